package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityFor(t *testing.T) {
	assert.Equal(t, map[Region]Visibility{
		RegionSignOnUp: Hidden,
		RegionLogOnIn:  Hidden,
		RegionLogOnOut: Visible,
	}, VisibilityFor(true))

	assert.Equal(t, map[Region]Visibility{
		RegionSignOnUp: Visible,
		RegionLogOnIn:  Visible,
		RegionLogOnOut: Hidden,
	}, VisibilityFor(false))
}

func TestNotifierFunc(t *testing.T) {
	var got Notice
	var n Notifier = NotifierFunc(func(notice Notice) { got = notice })

	n.Notify(newNotice(NoticeSignupRejected, nil))

	assert.Equal(t, NoticeSignupRejected, got.Kind)
	assert.Equal(t, "Incorrect email or password. Please try again!", got.Message)
}
