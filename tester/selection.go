package tester

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// selection is the parsed form of --only/--skip/--color. A nil only set
// means "every ordinal".
type selection struct {
	only      map[int]bool
	skip      map[int]bool
	colorMode string
}

// parseArgs parses the documented flags. The boolean result reports that
// Exec should return immediately with the given code (help requested or a
// bad invocation).
func (t *Tester) parseArgs(args []string, errorOutput io.Writer) (selection, int, bool) {
	sel := selection{colorMode: "auto"}

	fs := pflag.NewFlagSet("tester", pflag.ContinueOnError)
	fs.SetOutput(errorOutput)
	only := fs.String("only", "", "space-separated ordinals of the cases to run")
	skip := fs.String("skip", "", "space-separated ordinals of cases to leave out")
	colorMode := fs.String("color", "auto", "colored output: on, off or auto")

	if err := fs.Parse(dropSkippedPrefixes(args, t.conf.SkippedArgumentPrefixes)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return sel, 0, true
		}
		fmt.Fprintf(errorOutput, "tester: %v\n", err)
		return sel, 2, true
	}

	var err error
	if sel.only, err = parseOrdinalSet(*only); err != nil {
		fmt.Fprintf(errorOutput, "tester: invalid --only value %q: %v\n", *only, err)
		return sel, 2, true
	}
	if sel.skip, err = parseOrdinalSet(*skip); err != nil {
		fmt.Fprintf(errorOutput, "tester: invalid --skip value %q: %v\n", *skip, err)
		return sel, 2, true
	}

	switch *colorMode {
	case "on", "off", "auto":
		sel.colorMode = *colorMode
	default:
		fmt.Fprintf(errorOutput, "tester: invalid --color value %q, want on, off or auto\n", *colorMode)
		return sel, 2, true
	}
	return sel, 0, false
}

// parseOrdinalSet turns a space-separated ordinal list into a set. An empty
// list parses to nil, meaning the flag was not restricting anything.
func parseOrdinalSet(list string) (map[int]bool, error) {
	fields := strings.Fields(list)
	if len(fields) == 0 {
		return nil, nil
	}
	set := make(map[int]bool, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a case ordinal", f)
		}
		set[id] = true
	}
	return set, nil
}

// apply reduces the registry ordinals 1..total to the selected ones, in
// registration order regardless of how --only listed them. Unknown
// ordinals select nothing; --skip only ever removes.
func (s selection) apply(total int) []int {
	var ids []int
	for id := 1; id <= total; id++ {
		if s.only != nil && !s.only[id] {
			continue
		}
		if s.skip[id] {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// dropSkippedPrefixes removes `--<prefix>-...` arguments (and their
// detached values) for every configured pass-through prefix, so embedders
// can route one argument vector through several consumers.
func dropSkippedPrefixes(args, prefixes []string) []string {
	if len(prefixes) == 0 {
		return args
	}
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if matchesSkippedPrefix(arg, prefixes) {
			if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func matchesSkippedPrefix(arg string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(arg, "--"+p+"-") {
			return true
		}
	}
	return false
}

// padWidthFor is the ordinal column width: the digit count of the highest
// selected ordinal.
func padWidthFor(selected []int) int {
	if len(selected) == 0 {
		return 1
	}
	return len(strconv.Itoa(selected[len(selected)-1]))
}
