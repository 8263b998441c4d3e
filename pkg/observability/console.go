package observability

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/muesli/termenv"
)

// Console prints one line per completed loader:
//
//	[train] epoch 1  train  accuracy=0.8125  loss=0.4410
type Console struct {
	observer.Base
	out *termenv.Output
}

var _ observer.Observer = (*Console)(nil)

// NewConsole creates a Console writing to w. Colors are used only when w is a
// terminal that supports them.
func NewConsole(w io.Writer, opts ...termenv.OutputOption) *Console {
	return &Console{out: termenv.NewOutput(w, opts...)}
}

func (c *Console) loaderColor(mode domain.Mode) termenv.Color {
	if mode == domain.ModeInfer {
		return c.out.Color("#60a5fa")
	}
	return c.out.Color("#34d399")
}

func (c *Console) OnLoaderEnd(_ context.Context, s *domain.RunState) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] epoch %d  %s", s.Mode, s.Epoch, c.out.String(s.Loader).Foreground(c.loaderColor(s.Mode)).Bold())
	s.LoaderMetrics.Each(func(k string, v float64) {
		fmt.Fprintf(&b, "  %s=%s", k, c.out.String(fmt.Sprintf("%.4f", v)).Faint())
	})
	_, err := fmt.Fprintln(c.out, b.String())
	return err
}
