package terminal

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// Presenter prints the region table whenever a full set of regions differs
// from what was printed last.
type Presenter struct {
	mu      sync.Mutex
	out     io.Writer
	pending map[session.Region]session.Visibility
	shown   map[session.Region]session.Visibility
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:     out,
		pending: make(map[session.Region]session.Visibility, len(session.Regions)),
	}
}

func (p *Presenter) SetVisibility(region session.Region, visibility session.Visibility) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending[region] = visibility
	if len(p.pending) < len(session.Regions) {
		return
	}

	if !sameVisibility(p.pending, p.shown) {
		p.render(p.pending)
		p.shown = p.pending
	}
	p.pending = make(map[session.Region]session.Visibility, len(session.Regions))
}

func (p *Presenter) render(state map[session.Region]session.Visibility) {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tVISIBILITY")
	fmt.Fprintln(w, "──────\t──────────")
	for _, region := range session.Regions {
		fmt.Fprintf(w, "%s\t%s\n", region, state[region])
	}
	w.Flush()
}

func sameVisibility(a, b map[session.Region]session.Visibility) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
