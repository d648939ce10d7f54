package main

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	arg "github.com/alexflint/go-arg"
	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonstatic"
	"github.com/kiteco/pytranslate/kite-go/lang/python/pythontype"
	"github.com/kiteco/pytranslate/kite-golib/kitelog"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

type entry struct {
	QName string `json:"qname"`
	Kind  string `json:"kind"`
	Type  string `json:"type"`
}

// collect lists the bindings of a scope, followed by the members of each
// class bound in it
func collect(s *pythontype.Scope, p *pythontype.Printer, prefix string) []entry {
	var entries []entry
	var classes []*pythontype.ClassType
	for _, name := range s.Names() {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, b := range s.LookupLocal(name) {
			entries = append(entries, entry{QName: b.QName, Kind: b.Kind.String(), Type: p.Print(b.Type())})
			if c, ok := b.Type().(*pythontype.ClassType); ok {
				classes = append(classes, c)
			}
		}
	}
	for _, c := range classes {
		entries = append(entries, collect(c.Scope(), p, "")...)
	}
	return entries
}

func write(w io.Writer, entries []entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"qname", "kind", "type"})
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{e.QName, e.Kind, e.Type})
	}
	table.Render()
	return nil
}

func main() {
	var args struct {
		Config    string `arg:"--config" help:"YAML file with analyzer options"`
		Prefix    string `arg:"--prefix" help:"only print builtins whose name starts with this prefix"`
		JSON      bool   `arg:"--json" help:"print JSON instead of a table"`
		Literals  bool   `arg:"--literals" help:"print literal values of str and bool types"`
		Multiline bool   `arg:"--multiline" help:"print each arrow of a function type on its own line"`
		Verbose   bool   `arg:"-v" help:"enable debug logging"`
	}
	arg.MustParse(&args)

	opts := pythonstatic.DefaultOptions
	if args.Config != "" {
		var err error
		opts, err = pythonstatic.LoadOptions(args.Config)
		if err != nil {
			log.Fatalln(err)
		}
	}
	opts.Verbose = opts.Verbose || args.Verbose
	opts.ShowLiterals = opts.ShowLiterals || args.Literals
	opts.MultilineArrows = opts.MultilineArrows || args.Multiline

	logger := kitelog.New(opts.Verbose)
	defer logger.Sync()

	var durations kitelog.Durations
	var entries []entry
	durations.Time("collect", func() {
		entries = collect(pythontype.Builtins, opts.Printer(), args.Prefix)
	})
	durations.Time("write", func() {
		if err := write(os.Stdout, entries, args.JSON); err != nil {
			logger.Fatal("error writing builtins", zap.Error(err))
		}
	})
	durations.Flush(logger)
	logger.Debug("done", zap.Int("entries", len(entries)))
}
