package session

import (
	"context"
	"sync"
)

// memStore is an in-memory TokenStore that counts deletions
type memStore struct {
	mu      sync.Mutex
	token   string
	present bool
	deletes int
	saveErr error
}

func newMemStore(token string) *memStore {
	return &memStore{token: token, present: true}
}

func (m *memStore) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token, m.present = token, true
	return nil
}

func (m *memStore) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *memStore) DeleteToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	m.token, m.present = "", false
	return nil
}

func (m *memStore) stored() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.present
}

func (m *memStore) deletions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}

type recorder struct {
	mu         sync.Mutex
	notices    []Notice
	targets    []string
	visibility map[Region]Visibility
	applied    int
}

func newRecorder() *recorder {
	return &recorder{visibility: map[Region]Visibility{}}
}

func (r *recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) Navigate(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

func (r *recorder) SetVisibility(region Region, v Visibility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visibility[region] = v
	r.applied++
}

func (r *recorder) navigations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}

func (r *recorder) noticeKinds() []NoticeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]NoticeKind, len(r.notices))
	for i, n := range r.notices {
		kinds[i] = n.Kind
	}
	return kinds
}

func (r *recorder) shown() map[Region]Visibility {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Region]Visibility, len(r.visibility))
	for k, v := range r.visibility {
		out[k] = v
	}
	return out
}

type verifierFunc func(ctx context.Context, token string) error

func (f verifierFunc) Verify(ctx context.Context, token string) error { return f(ctx, token) }

type registrarFunc func(ctx context.Context, email, password string) (string, error)

func (f registrarFunc) Signup(ctx context.Context, email, password string) (string, error) {
	return f(ctx, email, password)
}
