package session

// Region identifies a part of the UI whose visibility follows the AuthStatus.
type Region string

const (
	RegionSignOnUp Region = "sign-on-up"
	RegionLogOnIn  Region = "log-on-in"
	RegionLogOnOut Region = "log-on-out"
)

// Regions lists every visibility-toggled region in display order.
var Regions = []Region{RegionSignOnUp, RegionLogOnIn, RegionLogOnOut}

// Visibility is the display state of a Region.
type Visibility string

const (
	Hidden  Visibility = "hidden"
	Visible Visibility = "visible"
)

// VisibilityFor maps an AuthStatus to the visibility of every region.
func VisibilityFor(signedIn bool) map[Region]Visibility {
	if signedIn {
		return map[Region]Visibility{
			RegionSignOnUp: Hidden,
			RegionLogOnIn:  Hidden,
			RegionLogOnOut: Visible,
		}
	}
	return map[Region]Visibility{
		RegionSignOnUp: Visible,
		RegionLogOnIn:  Visible,
		RegionLogOnOut: Hidden,
	}
}

// Presenter applies region visibility to whatever renders the UI.
type Presenter interface {
	SetVisibility(region Region, visibility Visibility)
}

// Navigation targets.
const (
	LoginPage = "/static/login.html"
	RootPage  = "/"
	HomePage  = "/static/index.html"
)

// Navigator moves the user to another page of the application.
type Navigator interface {
	Navigate(target string)
}

// Form field identifiers read by the signup client.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Form supplies the current value of a named input field.
type Form interface {
	Value(field string) string
}

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeSessionExpired NoticeKind = "session_expired"
	NoticeLoginRequired  NoticeKind = "login_required"
	NoticeSignupRejected NoticeKind = "signup_rejected"
	NoticeSignupFailed   NoticeKind = "signup_failed"
)

var noticeMessages = map[NoticeKind]string{
	NoticeSessionExpired: "Auth has expired. Please login again",
	NoticeLoginRequired:  "Please login again",
	NoticeSignupRejected: "Incorrect email or password. Please try again!",
	NoticeSignupFailed:   "There was an error please try again!",
}

// Notice is a user-facing message. Err carries the underlying cause, if any.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

func newNotice(kind NoticeKind, err error) Notice {
	return Notice{Kind: kind, Message: noticeMessages[kind], Err: err}
}

// Notifier delivers notices without blocking the session logic.
type Notifier interface {
	Notify(notice Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
