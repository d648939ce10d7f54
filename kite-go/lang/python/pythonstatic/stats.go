package pythonstatic

import (
	"fmt"
	"io"
	"sort"

	humanize "github.com/dustin/go-humanize"
)

// Names of the counters kept by the analyzer
const (
	StatBindings        = "bindings"
	StatProblems        = "problems"
	StatDroppedProblems = "problems dropped"
	StatReferences      = "references"
	StatExprTypes       = "expression types"
	StatResolved        = "resolved names"
	StatUnresolved      = "unresolved names"
	StatNodes           = "nodes"
)

// Statistics is a set of named counters
type Statistics struct {
	counts map[string]int64
}

// NewStatistics creates an empty set of counters
func NewStatistics() *Statistics {
	return &Statistics{counts: make(map[string]int64)}
}

// Inc increments a counter
func (s *Statistics) Inc(key string) {
	s.Add(key, 1)
}

// Add adds n to a counter
func (s *Statistics) Add(key string, n int64) {
	s.counts[key] += n
}

// Get gets the value of a counter, which is zero if it was never touched
func (s *Statistics) Get(key string) int64 {
	return s.counts[key]
}

// Keys gets the names of all counters in sorted order
func (s *Statistics) Keys() []string {
	keys := make([]string, 0, len(s.counts))
	for k := range s.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Print writes one "- key: value" line per counter, sorted by key
func (s *Statistics) Print(w io.Writer) error {
	for _, k := range s.Keys() {
		if _, err := fmt.Fprintf(w, "- %s: %s\n", k, humanize.Comma(s.counts[k])); err != nil {
			return err
		}
	}
	return nil
}
