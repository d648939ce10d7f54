package pythonstatic

import (
	"os"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythontype"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Options configures an Analyzer
type Options struct {
	// Verbose enables debug logging
	Verbose bool `yaml:"verbose"`
	// ShowLiterals prints literal values of str and bool types
	ShowLiterals bool `yaml:"show_literals"`
	// MultilineArrows prints each arrow of a function type on its own line
	MultilineArrows bool `yaml:"multiline_arrows"`
	// RecordExprTypes records the type of every expression typed by the analyzer
	RecordExprTypes bool `yaml:"record_expr_types"`
	// MaxProblems caps the number of diagnostics kept; zero means no cap
	MaxProblems int `yaml:"max_problems"`
}

// DefaultOptions are the options used when none are specified
var DefaultOptions = Options{
	RecordExprTypes: true,
	MaxProblems:     1000,
}

// LoadOptions reads options from a YAML file. Fields missing from the file
// keep their default values.
func LoadOptions(fname string) (Options, error) {
	opts := DefaultOptions

	f, err := os.Open(fname)
	if err != nil {
		return opts, errors.Wrapf(err, "error opening options file %s", fname)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&opts); err != nil {
		return opts, errors.Wrapf(err, "error decoding options file %s", fname)
	}
	if opts.MaxProblems < 0 {
		return opts, errors.Errorf("max_problems must not be negative, got %d", opts.MaxProblems)
	}
	return opts, nil
}

// Printer creates a type printer configured by these options
func (o Options) Printer() *pythontype.Printer {
	return &pythontype.Printer{
		ShowLiterals:    o.ShowLiterals,
		MultilineArrows: o.MultilineArrows,
	}
}
