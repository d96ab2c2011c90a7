package session

import "errors"

var (
	// ErrNoToken is returned by a TokenStore when nothing is persisted.
	ErrNoToken = errors.New("no token stored")

	// ErrSessionInvalid is returned by Verify when the auth service no longer
	// accepts the token or could not be reached.
	ErrSessionInvalid = errors.New("session is no longer valid")

	// ErrSignupRejected is returned by Submit when the auth service answered
	// with a non-success status.
	ErrSignupRejected = errors.New("signup rejected")
)

// rejection is implemented by errors meaning the auth service answered and
// refused, as opposed to the request never completing.
type rejection interface {
	Rejected() bool
}

func isRejected(err error) bool {
	var r rejection
	return errors.As(err, &r) && r.Rejected()
}
