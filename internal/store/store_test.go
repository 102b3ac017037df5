package store

import (
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSessionStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	cookies := []domain.StoredCookie{{Name: "session-name", Value: "abc123"}}
	require.NoError(t, s.SaveCookies("localhost:8080", cookies))
	require.NoError(t, s.SaveSession(domain.Session{Username: "reader"}))
	require.NoError(t, s.Close())

	reopened, err := NewSessionStore(dir, "http://localhost:8080/")
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.GetCookies("localhost:8080")
	require.True(t, ok)
	assert.Equal(t, cookies, got)

	session, ok := reopened.GetSession()
	require.True(t, ok)
	assert.Equal(t, "reader", session.Username)
}

func TestSessionStore_ServersAreIsolated(t *testing.T) {
	dir := t.TempDir()

	a, err := NewSessionStore(dir, "http://shop-a.example")
	require.NoError(t, err)
	require.NoError(t, a.SaveSession(domain.Session{Username: "alice"}))
	require.NoError(t, a.Close())

	b, err := NewSessionStore(dir, "http://shop-b.example")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.GetSession()
	assert.False(t, ok)
}

func TestSessionStore_ClearSession(t *testing.T) {
	s, err := NewSessionStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveCookies("localhost:8080", []domain.StoredCookie{{Name: "a", Value: "b"}}))
	require.NoError(t, s.SaveSession(domain.Session{Username: "admin"}))

	s.ClearSession()

	_, ok := s.GetSession()
	assert.False(t, ok)
	_, ok = s.GetCookies("localhost:8080")
	assert.False(t, ok)
}

func TestSessionStore_MemoryOnly(t *testing.T) {
	s, err := NewSessionStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.SaveSession(domain.Session{Username: "reader"}))
	session, ok := s.GetSession()
	require.True(t, ok)
	assert.False(t, session.IsAdmin())
	assert.NoError(t, s.Close())
}
