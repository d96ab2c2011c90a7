package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_SignedInAfterLoad(t *testing.T) {
	tests := []struct {
		name     string
		store    *memStore
		signedIn bool
	}{
		{name: "absent", store: &memStore{}, signedIn: false},
		{name: "empty", store: newMemStore(""), signedIn: false},
		{name: "undefined sentinel", store: newMemStore(UndefinedToken), signedIn: false},
		{name: "token", store: newMemStore("tok123"), signedIn: true},
		{name: "quoted undefined is a token", store: newMemStore(`"undefined"`), signedIn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(tt.store)
			require.NoError(t, state.Load())
			assert.Equal(t, tt.signedIn, state.SignedIn())
		})
	}
}

func TestState_NormalizeOnlyTouchesSentinel(t *testing.T) {
	state := NewState(newMemStore(UndefinedToken))
	require.NoError(t, state.Load())
	assert.Equal(t, UndefinedToken, state.Token())

	state.Normalize()
	assert.Equal(t, "", state.Token())

	require.NoError(t, state.Set("tok"))
	state.Normalize()
	assert.Equal(t, "tok", state.Token())
}

func TestState_SetPersistsThenMirrors(t *testing.T) {
	store := &memStore{}
	state := NewState(store)

	require.NoError(t, state.Set("tok123"))

	persisted, ok := store.stored()
	assert.True(t, ok)
	assert.Equal(t, "tok123", persisted)
	assert.Equal(t, "tok123", state.Token())
}

func TestState_SetFailureLeavesMirror(t *testing.T) {
	store := &memStore{saveErr: errors.New("keychain locked")}
	state := NewState(store)

	err := state.Set("tok123")
	require.Error(t, err)
	assert.Equal(t, "", state.Token())
}

func TestState_ClearIsIdempotent(t *testing.T) {
	store := newMemStore("tok")
	state := NewState(store)
	require.NoError(t, state.Load())

	require.NoError(t, state.Clear())
	require.NoError(t, state.Clear())

	_, ok := store.stored()
	assert.False(t, ok)
	assert.Equal(t, "", state.Token())
	assert.False(t, state.SignedIn())
}
