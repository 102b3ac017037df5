package bookstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/folio/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRate    = 10
	userAgent      = "Folio/1.0"
)

// Credential modes, mirroring the browser's fetch credentials option
const (
	CredentialsInclude = "include"
	CredentialsOmit    = "omit"
)

// Options configures a Client
type Options struct {
	BaseURL           string
	Credentials       string        // "include" (default) or "omit"
	Timeout           time.Duration // per request
	RequestsPerSecond float64       // outgoing rate; <= 0 uses the default
	Store             domain.SessionStore
}

// Client implements domain.Bookstore over the bookstore REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        *persistentJar
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new bookstore API client
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		logger:     logger,
	}

	switch opts.Credentials {
	case "", CredentialsInclude:
		jar, err := newPersistentJar(base, opts.Store, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.jar = jar
		c.httpClient.Jar = jar
	case CredentialsOmit:
	default:
		return nil, fmt.Errorf("unknown credentials mode: %s", opts.Credentials)
	}

	return c, nil
}

// BaseURL returns the server URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResetSession drops the client's session cookies
func (c *Client) ResetSession() {
	if c.jar != nil {
		c.jar.reset()
	}
}

// doRequest performs a request against the API and returns the raw body of a 2xx answer.
// Non-2xx answers become *domain.RejectedError carrying the server's error string.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("bookstore request", "method", method, "url", reqURL, "requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("bookstore request failed", "error", err, "requestID", requestID)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp ErrorResponse
		_ = json.Unmarshal(respBody, &errResp)
		c.logger.Warn("bookstore request rejected",
			"status", resp.StatusCode, "error", errResp.Error, "requestID", requestID)
		return nil, &domain.RejectedError{Status: resp.StatusCode, Message: errResp.Error}
	}

	return respBody, nil
}

// do performs a request and decodes a 2xx body into dest
func (c *Client) do(ctx context.Context, method, path string, payload, dest any) error {
	body, err := c.doRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// message performs a request whose answer is the {message} envelope
func (c *Client) message(ctx context.Context, method, path string, payload any) (string, error) {
	var resp MessageResponse
	if err := c.do(ctx, method, path, payload, &resp); err != nil {
		return "", err
	}
	return string(resp.Message), nil
}

func isbnPath(format, isbn string) string {
	return fmt.Sprintf(format, url.PathEscape(isbn))
}

// === Catalog ===

// GetBooks returns the full catalog
func (c *Client) GetBooks(ctx context.Context) ([]domain.Book, error) {
	var items []BookDTO
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &items); err != nil {
		return nil, err
	}
	return MapBooks(items), nil
}

// === Purchases ===

// OwnershipStatus reports whether the signed-in user bought the book
func (c *Client) OwnershipStatus(ctx context.Context, isbn string) (bool, error) {
	var resp OwnershipResponse
	if err := c.do(ctx, http.MethodGet, isbnPath("/api/ownershipStatus/%s", isbn), nil, &resp); err != nil {
		return false, err
	}
	return resp.Status, nil
}

// BuyBook purchases a book and returns the server's message
func (c *Client) BuyBook(ctx context.Context, isbn string) (string, error) {
	return c.message(ctx, http.MethodGet, isbnPath("/api/buy-book/%s", isbn), nil)
}

// DownloadLink returns the book's download URL, or "" if the server has none
func (c *Client) DownloadLink(ctx context.Context, isbn string) (string, error) {
	link, err := c.message(ctx, http.MethodGet, isbnPath("/api/getDownloadLink/%s", isbn), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(link), nil
}

// === Reviews ===

// GetReviews returns every review of a book
func (c *Client) GetReviews(ctx context.Context, isbn string) ([]domain.Review, error) {
	var items []ReviewDTO
	if err := c.do(ctx, http.MethodGet, isbnPath("/api/getReview/%s", isbn), nil, &items); err != nil {
		return nil, err
	}
	return MapReviews(items), nil
}

// PostReview submits a review
func (c *Client) PostReview(ctx context.Context, isbn string, input domain.ReviewInput) (string, error) {
	return c.message(ctx, http.MethodPost, isbnPath("/api/post-review/%s", isbn), input)
}

// === Admin ===

// CreateBook adds a catalog record
func (c *Client) CreateBook(ctx context.Context, input domain.BookInput) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/books/create-book", input)
}

// UpdateBook replaces a catalog record
func (c *Client) UpdateBook(ctx context.Context, isbn string, input domain.BookInput) (string, error) {
	return c.message(ctx, http.MethodPut, isbnPath("/api/books/%s", isbn), input)
}

// DeleteBook removes a catalog record. The server expects the record details as the body.
func (c *Client) DeleteBook(ctx context.Context, book domain.Book) (string, error) {
	return c.message(ctx, http.MethodDelete, isbnPath("/api/books/%s", book.ISBN), toDeleteRequest(book))
}

// === Auth ===

// Login signs in; the session cookie lands in the jar
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/auth/login", creds)
}

// Register creates an account
func (c *Client) Register(ctx context.Context, creds domain.Credentials) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/auth/register", creds)
}

// Logout ends the server session
func (c *Client) Logout(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodGet, "/api/auth/logout", nil)
}

// DeleteAccount deletes the signed-in account
func (c *Client) DeleteAccount(ctx context.Context, creds domain.Credentials) (string, error) {
	return c.message(ctx, http.MethodDelete, "/api/auth/delete-account", creds)
}

// Balance returns the account balance
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var resp BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/api/getBalance", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}
