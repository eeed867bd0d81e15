package machine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Profiler counts fast-path versus generic-path dispatches per
// combinator, in the spirit of EnhancedVM's loopCounter hot-loop
// tracking — sentra records the counts but never renders them
// anywhere; Profiler.Report finishes that job with humanized counts.
type Profiler struct {
	counts map[string]*combinatorCounts
}

type combinatorCounts struct {
	fast    uint64
	generic uint64
	broke   uint64
}

// NewProfiler returns an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{counts: make(map[string]*combinatorCounts)}
}

func (p *Profiler) record(combinator string, fastPath, broke bool) {
	if p == nil {
		return
	}
	c, ok := p.counts[combinator]
	if !ok {
		c = &combinatorCounts{}
		p.counts[combinator] = c
	}
	if fastPath {
		c.fast++
	} else {
		c.generic++
	}
	if broke {
		c.broke++
	}
}

// Report renders a humanized, deterministically-ordered summary line
// per combinator that has been dispatched at least once.
func (p *Profiler) Report() string {
	if p == nil || len(p.counts) == 0 {
		return "no combinator dispatches recorded"
	}
	names := make([]string, 0, len(p.counts))
	for name := range p.counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		c := p.counts[name]
		fmt.Fprintf(&b, "%s: %s fast, %s generic, %s broke\n",
			name, humanize.Comma(int64(c.fast)), humanize.Comma(int64(c.generic)), humanize.Comma(int64(c.broke)))
	}
	return b.String()
}
