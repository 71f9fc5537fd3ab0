package session

import (
	"testing"

	"storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store, nil)

	_, err := s.Login("", "pw")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = s.Login("a@example.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	u, err := s.Login(" a@example.com ", "anything")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)

	raw, ok, err := store.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"a@example.com"}`, string(raw))
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name     string
		uname    string
		email    string
		password string
		confirm  string
		wantErr  error
	}{
		{"missing name", "", "a@example.com", "secret1", "secret1", ErrMissingFields},
		{"missing confirm", "Ann", "a@example.com", "secret1", "", ErrMissingFields},
		{"bad email", "Ann", "not-an-email", "secret1", "secret1", ErrInvalidEmail},
		{"display name email", "Ann", "Ann <a@example.com>", "secret1", "secret1", ErrInvalidEmail},
		{"short password", "Ann", "a@example.com", "12345", "12345", ErrPasswordTooShort},
		{"mismatch", "Ann", "a@example.com", "secret1", "secret2", ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			_, err := New(store, nil).Signup(tt.uname, tt.email, tt.password, tt.confirm)
			assert.ErrorIs(t, err, tt.wantErr)

			_, ok, _ := store.Get(StorageKey)
			assert.False(t, ok)
		})
	}

	store := storage.NewMemoryStore()
	u, err := New(store, nil).Signup("Ann", "a@example.com", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, User{Name: "Ann", Email: "a@example.com"}, u)

	raw, _, _ := store.Get(StorageKey)
	assert.JSONEq(t, `{"name":"Ann","email":"a@example.com"}`, string(raw))
}

func TestCurrentAndLogout(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store, nil)

	_, ok, err := s.Current()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Login("a@example.com", "pw")
	require.NoError(t, err)

	u, ok, err := s.Current()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", u.Email)

	require.NoError(t, s.Logout())
	_, ok, err = s.Current()
	require.NoError(t, err)
	assert.False(t, ok)

	// 未ログインでもエラーにしない
	require.NoError(t, s.Logout())
}

func TestCurrent_Malformed(t *testing.T) {
	for _, raw := range []string{`{bad`, `{"name":"no email"}`, `[]`} {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(StorageKey, []byte(raw)))

		_, ok, err := New(store, nil).Current()
		require.NoError(t, err)
		assert.False(t, ok, raw)
	}
}
