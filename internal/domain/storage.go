package domain

// SessionStore persists the client session between runs.
// Cookies are keyed by host so switching servers never leaks a session.
type SessionStore interface {
	// === Cookies ===
	GetCookies(host string) ([]StoredCookie, bool)
	SaveCookies(host string, cookies []StoredCookie) error

	// === Identity ===
	GetSession() (Session, bool)
	SaveSession(session Session) error

	// === Invalidation ===
	ClearSession()

	Close() error
}

// StoredCookie is the persisted form of a session cookie
type StoredCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
