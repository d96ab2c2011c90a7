package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionguard-dev/sessionguard/internal/cli/client"
)

type staticForm map[string]string

func (f staticForm) Value(field string) string { return f[field] }

func newTestSignup(store *memStore, registrar Registrar, form Form) (*SignupClient, *State, *recorder) {
	rec := newRecorder()
	state := NewState(store)
	c := NewSignupClient(SignupConfig{
		State:     state,
		Registrar: registrar,
		Form:      form,
		Notifier:  rec,
		Navigator: rec,
		Logger:    zerolog.Nop(),
	})
	return c, state, rec
}

// fakeAuthServer answers /signup with status and body
func fakeAuthServer(t *testing.T, status int, body string, got *client.SignupRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != client.SignupPath || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSignup_SuccessStoresToken(t *testing.T) {
	// Scenario D
	var got client.SignupRequest
	srv := fakeAuthServer(t, http.StatusOK, `{"access_token":"tok123"}`, &got)

	store := &memStore{}
	c, state, rec := newTestSignup(store, client.New(srv.URL, 0), staticForm{
		FieldEmail:    "a@b.com",
		FieldPassword: "pw",
	})

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, client.SignupRequest{Email: "a@b.com", Password: "pw"}, got)
	persisted, ok := store.stored()
	assert.True(t, ok)
	assert.Equal(t, "tok123", persisted)
	assert.Equal(t, "tok123", state.Token())
	assert.Equal(t, []string{HomePage}, rec.navigations())
	assert.Empty(t, rec.noticeKinds())
}

func TestSignup_RejectedLeavesStateAlone(t *testing.T) {
	// Scenario E
	srv := fakeAuthServer(t, http.StatusUnauthorized, "", nil)

	store := &memStore{}
	c, state, rec := newTestSignup(store, client.New(srv.URL, 0), staticForm{
		FieldEmail:    "a@b.com",
		FieldPassword: "wrong",
	})

	err := c.Submit(context.Background())

	require.ErrorIs(t, err, ErrSignupRejected)
	_, ok := store.stored()
	assert.False(t, ok)
	assert.Equal(t, "", state.Token())
	assert.Empty(t, rec.navigations())
	assert.Equal(t, []NoticeKind{NoticeSignupRejected}, rec.noticeKinds())
}

func TestSignup_TransportErrorUsesGenericNotice(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := &memStore{}
	c, _, rec := newTestSignup(store, client.New(url, 0), staticForm{})

	err := c.Submit(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSignupRejected)
	_, ok := store.stored()
	assert.False(t, ok)
	assert.Empty(t, rec.navigations())
	assert.Equal(t, []NoticeKind{NoticeSignupFailed}, rec.noticeKinds())
}

func TestSignup_EmptyFieldsSentAsIs(t *testing.T) {
	var got client.SignupRequest
	srv := fakeAuthServer(t, http.StatusOK, `{"access_token":"tok"}`, &got)

	c, _, _ := newTestSignup(&memStore{}, client.New(srv.URL, 0), staticForm{})

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, client.SignupRequest{}, got)
}

func TestSignup_MissingTokenIsNotStored(t *testing.T) {
	srv := fakeAuthServer(t, http.StatusOK, `{"msg":"ok"}`, nil)

	store := &memStore{}
	c, state, rec := newTestSignup(store, client.New(srv.URL, 0), staticForm{})

	err := c.Submit(context.Background())

	require.ErrorIs(t, err, client.ErrMissingToken)
	assert.NotErrorIs(t, err, ErrSignupRejected)
	_, ok := store.stored()
	assert.False(t, ok)
	assert.Equal(t, "", state.Token())
	assert.Equal(t, []NoticeKind{NoticeSignupFailed}, rec.noticeKinds())
}

func TestSignup_StoreFailureIsReported(t *testing.T) {
	store := &memStore{saveErr: errors.New("keychain locked")}
	c, state, rec := newTestSignup(store, registrarFunc(func(context.Context, string, string) (string, error) {
		return "tok", nil
	}), staticForm{})

	require.Error(t, c.Submit(context.Background()))
	assert.Equal(t, "", state.Token())
	assert.Empty(t, rec.navigations())
	assert.Equal(t, []NoticeKind{NoticeSignupFailed}, rec.noticeKinds())
}
