package bookstore

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/mmcdole/folio/internal/domain"
)

// persistentJar is a cookie jar that mirrors the server's cookies into the
// session store, so a login survives restarts.
type persistentJar struct {
	inner  *cookiejar.Jar
	base   *url.URL
	store  domain.SessionStore
	logger *slog.Logger
}

func newPersistentJar(base *url.URL, store domain.SessionStore, logger *slog.Logger) (*persistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	j := &persistentJar{inner: inner, base: base, store: store, logger: logger}

	if store != nil {
		if stored, ok := store.GetCookies(base.Host); ok && len(stored) > 0 {
			cookies := make([]*http.Cookie, len(stored))
			for i, c := range stored {
				cookies[i] = &http.Cookie{Name: c.Name, Value: c.Value}
			}
			inner.SetCookies(base, cookies)
			logger.Debug("restored session cookies", "count", len(cookies))
		}
	}

	return j, nil
}

func (j *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	j.persist()
}

func (j *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// reset drops every cookie for the base URL, in memory and on disk
func (j *persistentJar) reset() {
	current := j.inner.Cookies(j.base)
	expired := make([]*http.Cookie, len(current))
	for i, c := range current {
		expired[i] = &http.Cookie{Name: c.Name, Value: "", MaxAge: -1}
	}
	j.inner.SetCookies(j.base, expired)
	j.persist()
}

func (j *persistentJar) persist() {
	if j.store == nil {
		return
	}
	current := j.inner.Cookies(j.base)
	stored := make([]domain.StoredCookie, len(current))
	for i, c := range current {
		stored[i] = domain.StoredCookie{Name: c.Name, Value: c.Value}
	}
	if err := j.store.SaveCookies(j.base.Host, stored); err != nil {
		j.logger.Error("failed to persist cookies", "error", err)
	}
}
