package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// Form resolves signup fields from preset values (flags, environment) and,
// on an interactive terminal, prompts for the ones still missing. Missing
// values on a non-interactive terminal are returned empty, as they are.
type Form struct {
	values      map[string]string
	interactive bool
	out         io.Writer
	prompt      func(field string) (string, error)
}

// FormOption configures a Form
type FormOption func(*Form)

// WithPrompter replaces the terminal prompts, mainly for tests
func WithPrompter(prompt func(field string) (string, error)) FormOption {
	return func(f *Form) {
		f.prompt = prompt
		f.interactive = true
	}
}

func NewForm(out io.Writer, values map[string]string, opts ...FormOption) *Form {
	if values == nil {
		values = map[string]string{}
	}
	f := &Form{
		values:      values,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		out:         out,
	}
	f.prompt = f.promptTerminal
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Value(field string) string {
	if v := f.values[field]; v != "" || !f.interactive {
		return v
	}

	v, err := f.prompt(field)
	if err != nil {
		fmt.Fprintf(f.out, "⚠ failed to read %s: %v\n", field, err)
		return ""
	}
	f.values[field] = v
	return v
}

func (f *Form) promptTerminal(field string) (string, error) {
	if field == session.FieldPassword {
		fmt.Fprint(f.out, "Password: ")
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(f.out) // New line after password input
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	prompt := promptui.Prompt{
		Label: field,
	}
	return prompt.Run()
}
