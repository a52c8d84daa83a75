package ui

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/runner"
	"gtp/tester"
)

func testFormatter(t *testing.T) (*Formatter, *bytes.Buffer) {
	t.Helper()
	cfg := config.New()
	cfg.Color = "off"
	var buf bytes.Buffer
	return NewFormatter(cfg, &buf), &buf
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleReport() *domain.RunReport {
	return &domain.RunReport{
		Meta: domain.RunMeta{
			TotalSuites:     3,
			PassedSuites:    1,
			FailedSuites:    2,
			TotalCases:      24,
			FailedCases:     3,
			SkippedCases:    2,
			EmptyCases:      1,
			Checks:          57,
			Errors:          4,
			Duration:        "1.25s",
			DurationSeconds: 1.25,
			Timestamp:       "2024-06-01T12:00:00Z",
		},
		Details: []domain.CaseFailure{
			{Suite: "CalcSuite", CaseName: "divide", CaseID: 3, Line: 42, Detail: "division mismatch"},
			{Suite: "CalcSuite", CaseName: "modulo", CaseID: 5, Line: 57, Detail: "remainder mismatch"},
			{Suite: "TextSuite", CaseName: "trim", CaseID: 2, Line: 19, Detail: "whitespace left over"},
		},
	}
}

type listSuite struct {
	*tester.Tester
}

func newListSuite() tester.TestSuite {
	s := &listSuite{Tester: tester.New()}
	s.RegisterTest("formatter_test.go", "CalcSuite")
	s.AddTests(s.addOne, s.subtract, s.multiply)
	return s
}

func (s *listSuite) addOne()   {}
func (s *listSuite) subtract() {}
func (s *listSuite) multiply() {}

type bareSuite struct {
	*tester.Tester
}

func newBareSuite() tester.TestSuite {
	return &bareSuite{Tester: tester.New()}
}

func listEntries() []runner.Entry {
	return []runner.Entry{
		{Name: "CalcSuite", New: newListSuite},
		{Name: "BareSuite", New: newBareSuite},
	}
}

func TestFormatterPrintReportStats(t *testing.T) {
	f, buf := testFormatter(t)

	f.PrintReportStats(sampleReport())

	golden(t).Assert(t, "stats_table", buf.Bytes())
}

func TestFormatterPrintReportStatsAllPassed(t *testing.T) {
	f, buf := testFormatter(t)

	report := sampleReport()
	report.Meta.FailedSuites = 0
	report.Meta.PassedSuites = 3
	report.Meta.FailedCases = 0
	report.Meta.Errors = 0
	report.Details = nil

	f.PrintReportStats(report)

	golden(t).Assert(t, "stats_all_passed", buf.Bytes())
}

func TestFormatterPrintMetaStatsReadsReportFile(t *testing.T) {
	cfg := config.New()
	cfg.Color = "off"
	cfg.OutputDir = t.TempDir()

	data, err := json.MarshalIndent(sampleReport(), "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, cfg.ReportFile), data, 0644))

	var buf bytes.Buffer
	f := NewFormatter(cfg, &buf)
	require.NoError(t, f.PrintMetaStats())

	golden(t).Assert(t, "stats_table", buf.Bytes())
}

func TestFormatterPrintMetaStatsMissingReport(t *testing.T) {
	cfg := config.New()
	cfg.Color = "off"
	cfg.OutputDir = t.TempDir()

	var buf bytes.Buffer
	f := NewFormatter(cfg, &buf)

	err := f.PrintMetaStats()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read report file")
}

func TestFormatterPrintSuiteListWithCases(t *testing.T) {
	f, buf := testFormatter(t)

	failed := map[string]struct{}{"CalcSuite": {}}
	require.NoError(t, f.PrintSuiteList(listEntries(), true, failed))

	golden(t).Assert(t, "suite_list", buf.Bytes())
}

func TestFormatterPrintSuiteListSimple(t *testing.T) {
	f, buf := testFormatter(t)

	failed := map[string]struct{}{"CalcSuite": {}}
	require.NoError(t, f.PrintSuiteList(listEntries(), false, failed))

	golden(t).Assert(t, "suite_list_simple", buf.Bytes())
}

func TestFormatterPrintHistory(t *testing.T) {
	f, buf := testFormatter(t)

	records := []domain.HistoryRecord{
		{ID: 7, Timestamp: "2024-06-02T09:30:00Z", TotalSuites: 3, FailedSuites: 0, Checks: 57, Errors: 0, DurationSeconds: 1.05},
		{ID: 6, Timestamp: "2024-06-01T12:00:00Z", TotalSuites: 3, FailedSuites: 2, Checks: 57, Errors: 4, DurationSeconds: 1.25},
	}
	require.NoError(t, f.PrintHistory(records))

	golden(t).Assert(t, "history_table", buf.Bytes())
}

func TestFormatterPrintHistoryEmpty(t *testing.T) {
	f, buf := testFormatter(t)

	require.NoError(t, f.PrintHistory(nil))

	assert.Equal(t, "No recorded runs yet.\n", buf.String())
}

func TestFormatterColorOnEmitsEscapes(t *testing.T) {
	cfg := config.New()
	cfg.Color = "on"
	var buf bytes.Buffer
	f := NewFormatter(cfg, &buf)

	f.PrintReportStats(sampleReport())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[2J\x1b[H"))
	assert.Contains(t, out, "\x1b[")
}

func TestFormatterCountTestCases(t *testing.T) {
	f, _ := testFormatter(t)

	assert.Equal(t, 3, f.CountTestCases(listEntries()))
	assert.Equal(t, 0, f.CountTestCases(nil))
}
