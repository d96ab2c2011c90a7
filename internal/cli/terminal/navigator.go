package terminal

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Navigator announces page changes and can open them in a browser.
type Navigator struct {
	mu          sync.Mutex
	out         io.Writer
	baseURL     string
	openBrowser bool
	onNavigate  func(target string)
}

// NavigatorOption configures a Navigator
type NavigatorOption func(*Navigator)

// WithBrowser opens every target in the default browser
func WithBrowser(open bool) NavigatorOption {
	return func(n *Navigator) {
		n.openBrowser = open
	}
}

// OnNavigate registers a hook called after each navigation
func OnNavigate(fn func(target string)) NavigatorOption {
	return func(n *Navigator) {
		n.onNavigate = fn
	}
}

func NewNavigator(out io.Writer, baseURL string, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		out:     out,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Navigator) Navigate(target string) {
	url := n.baseURL + target

	n.mu.Lock()
	fmt.Fprintf(n.out, "→ %s\n", url)
	if n.openBrowser {
		if err := openBrowser(url); err != nil {
			fmt.Fprintf(n.out, "⚠ Could not open browser automatically: %v\n", err)
		}
	}
	hook := n.onNavigate
	n.mu.Unlock()

	if hook != nil {
		hook(target)
	}
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
