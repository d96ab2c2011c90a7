package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sessionguard-dev/sessionguard/internal/cli/client"
)

type refusal bool

func (r refusal) Error() string  { return "refusal" }
func (r refusal) Rejected() bool { return bool(r) }

func TestIsRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "status error", err: &client.StatusError{StatusCode: 401}, want: true},
		{name: "wrapped status error", err: fmt.Errorf("verify: %w", &client.StatusError{StatusCode: 500}), want: true},
		{name: "transport error", err: errors.New("connection refused")},
		{name: "missing token", err: client.ErrMissingToken},
		{name: "reports not rejected", err: refusal(false)},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRejected(tt.err))
		})
	}
}
