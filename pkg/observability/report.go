package observability

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
)

// Report renders a summary table of the final epoch when a run ends.
type Report struct {
	observer.Base
	w      io.Writer
	render func(string) (string, error)
}

var _ observer.Observer = (*Report)(nil)

// NewReport creates a Report writing to w. render post-processes the
// markdown (e.g. a glamour renderer); nil writes the markdown as is.
func NewReport(w io.Writer, render func(string) (string, error)) *Report {
	return &Report{w: w, render: render}
}

func (r *Report) OnTrainEnd(_ context.Context, s *domain.RunState) error {
	return r.write(s)
}

func (r *Report) OnInferEnd(_ context.Context, s *domain.RunState) error {
	return r.write(s)
}

func (r *Report) write(s *domain.RunState) error {
	md := Markdown(s)
	if r.render != nil {
		out, err := r.render(md)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		md = out
	}
	_, err := io.WriteString(r.w, md)
	return err
}

// Markdown formats the epoch aggregates of s as a markdown table, one row per
// loader (sorted) and one column per metric in first-seen order.
func Markdown(s *domain.RunState) string {
	loaders := make([]string, 0, len(s.EpochMetrics))
	for name := range s.EpochMetrics {
		loaders = append(loaders, name)
	}
	sort.Strings(loaders)

	var columns []string
	seen := make(map[string]bool)
	for _, name := range loaders {
		for _, k := range s.EpochMetrics[name].Keys() {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Run `%s` (%s, epoch %d)\n\n", s.RunID, s.Mode, s.Epoch)
	if len(loaders) == 0 {
		b.WriteString("_no metrics recorded_\n")
		return b.String()
	}

	b.WriteString("| loader |")
	for _, c := range columns {
		fmt.Fprintf(&b, " %s |", c)
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---|", len(columns)))
	b.WriteString("\n")

	for _, name := range loaders {
		fmt.Fprintf(&b, "| %s |", name)
		for _, c := range columns {
			if v, ok := s.EpochMetrics[name].Get(c); ok {
				fmt.Fprintf(&b, " %.4f |", v)
			} else {
				b.WriteString(" - |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
