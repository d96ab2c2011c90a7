package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// Notifier writes notices to the terminal and records them in the log.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger zerolog.Logger
}

func NewNotifier(out io.Writer, logger zerolog.Logger) *Notifier {
	return &Notifier{out: out, logger: logger}
}

func (n *Notifier) Notify(notice session.Notice) {
	n.logger.Debug().
		Str("kind", string(notice.Kind)).
		AnErr("cause", notice.Err).
		Msg(notice.Message)

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "⚠ %s\n", notice.Message)
}
