package bookstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL
	c, err := NewClient(opts, nil)
	require.NoError(t, err)
	return c
}

func TestClient_GetBooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`[
			{"ID": 1, "CreatedAt": "2024-01-02T03:04:05Z", "title": "Dune", "author": "Frank Herbert",
			 "description": "Spice", "isbn": "9780441013593", "published_year": 1965, "price": 9.99, "Reviews": null},
			{"ID": 2, "title": "No ISBN", "isbn": ""}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	books, err := c.GetBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, domain.Book{
		ID:            1,
		ISBN:          "9780441013593",
		Title:         "Dune",
		Author:        "Frank Herbert",
		Description:   "Spice",
		PublishedYear: 1965,
		Price:         9.99,
	}, books[0])
}

func TestClient_DownloadLink(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "link", body: `{"message": "https://files.example/dune.epub"}`, want: "https://files.example/dune.epub"},
		{name: "false", body: `{"message": false}`, want: ""},
		{name: "empty", body: `{"message": ""}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/getDownloadLink/123", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			link, err := newTestClient(t, srv, Options{}).DownloadLink(context.Background(), "123")
			require.NoError(t, err)
			assert.Equal(t, tt.want, link)
		})
	}
}

func TestClient_RejectionCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "Insufficient balance"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, Options{}).BuyBook(context.Background(), "123")
	require.Error(t, err)

	var rejected *domain.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusForbidden, rejected.Status)
	assert.Equal(t, "Insufficient balance", rejected.Message)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "Insufficient balance", domain.AlertText(err, "fallback"))
}

func TestClient_UnauthorizedUnwrapsToAuthFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "User not logged in"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, Options{}).OwnershipStatus(context.Background(), "123")
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestClient_ServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv, Options{})
	srv.Close()

	_, err := c.GetBooks(context.Background())
	assert.True(t, errors.Is(err, domain.ErrServerOffline))
	assert.Equal(t, "fallback", domain.AlertText(err, "fallback"))
}

func TestClient_DeleteBookSendsDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/books/123", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body deleteBookRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Dune", body.Title)
		assert.Equal(t, "123", body.ISBN)

		w.Write([]byte(`{"message": "Book deleted successfully"}`))
	}))
	defer srv.Close()

	msg, err := newTestClient(t, srv, Options{}).DeleteBook(context.Background(), domain.Book{ISBN: "123", Title: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, "Book deleted successfully", msg)
}

func TestClient_SessionCookiePersistsAcrossClients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session-name", Value: "s3cret", Path: "/"})
		w.Write([]byte(`{"message": "Logged in successfully"}`))
	})
	mux.HandleFunc("/api/getBalance", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session-name")
		if err != nil || cookie.Value != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "Unauthorized"}`))
			return
		}
		w.Write([]byte(`{"balance": 42.5}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions, err := store.NewSessionStore("", "")
	require.NoError(t, err)

	first := newTestClient(t, srv, Options{Store: sessions})
	msg, err := first.Login(context.Background(), domain.Credentials{Username: "reader", Email: "r@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Logged in successfully", msg)

	second := newTestClient(t, srv, Options{Store: sessions})
	balance, err := second.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.5, balance)

	second.ResetSession()
	third := newTestClient(t, srv, Options{Store: sessions})
	_, err = third.Balance(context.Background())
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestClient_CredentialsOmit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session-name", Value: "s3cret", Path: "/"})
		w.Write([]byte(`{"message": "Logged in successfully"}`))
	})
	mux.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("session-name")
		assert.ErrorIs(t, err, http.ErrNoCookie)
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, Options{Credentials: CredentialsOmit})
	_, err := c.Login(context.Background(), domain.Credentials{Username: "u", Email: "u@example.com", Password: "p"})
	require.NoError(t, err)
	books, err := c.GetBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestClient_PostReviewBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/post-review/978%2F1", r.URL.RawPath)
		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"rating": 4, "comment": "Great"}`, string(data))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": "Review posted successfully"}`))
	}))
	defer srv.Close()

	msg, err := newTestClient(t, srv, Options{}).PostReview(context.Background(), "978/1", domain.ReviewInput{Rating: 4, Comment: "Great"})
	require.NoError(t, err)
	assert.Equal(t, "Review posted successfully", msg)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "not a url"}, nil)
	assert.Error(t, err)

	_, err = NewClient(Options{BaseURL: "http://localhost:8080", Credentials: "same-origin"}, nil)
	assert.Error(t, err)
}
