// Package idoit is a client for the i-doit CMDB JSON-RPC API.
// It builds the request envelope, picks an authentication mode and
// unwraps the response into typed results or a *RequestError.
package idoit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
)

const DefaultLanguage = "en"

type ClientContract interface {
	Login(ctx context.Context) (*LoginResult, error)
	Logout(ctx context.Context) error
	Version(ctx context.Context) (*VersionResult, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Constants(ctx context.Context) (*Constants, error)

	ObjectCreate(ctx context.Context, objType any, title string, opts *ObjectCreateOptions) (*ObjectCreateResult, error)
	ObjectRead(ctx context.Context, id int64) (*Object, error)
	ObjectUpdate(ctx context.Context, id int64, title string) (*StatusResult, error)
	ObjectDelete(ctx context.Context, id int64, status string) (*StatusResult, error)
	ObjectRecycle(ctx context.Context, id int64) (*StatusResult, error)
	ObjectArchive(ctx context.Context, id int64) (*StatusResult, error)
	ObjectPurge(ctx context.Context, id int64) (*StatusResult, error)
	ObjectMarkAsTemplate(ctx context.Context, id int64) (*StatusResult, error)

	Call(ctx context.Context, method string, params Params) (json.RawMessage, error)
	CallWithID(ctx context.Context, id int, method string, params Params) (json.RawMessage, error)

	Session() string
	SetSession(id string)
	SetAuth(username, password string) error
}

// ClientInit structure is only for initialization.
type ClientInit struct {
	URL      string
	APIKey   string
	Username string
	Password string
	// Language is sent with idoit.login, "en" when empty.
	Language   string
	HTTPClient *http.Client
	Log        *slog.Logger
}

type Client struct {
	url      string
	apikey   string
	language string

	httpClient *http.Client
	log        *slog.Logger

	mu       sync.RWMutex
	username string
	password string
	session  string
}

// New creates a client for the endpoint in o. No request is made.
func New(o *ClientInit) *Client {
	c := &Client{
		url:        o.URL,
		apikey:     o.APIKey,
		language:   o.Language,
		username:   o.Username,
		password:   o.Password,
		httpClient: o.HTTPClient,
		log:        o.Log,
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

func (c *Client) URL() string {
	return c.url
}

// Session returns the active session id, or "" when not logged in.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession restores a session obtained earlier, e.g. from a session file.
// An empty id clears the session locally without contacting i-doit.
func (c *Client) SetSession(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = id
}

// SetAuth configures credentials used for HTTP basic auth and for Login.
func (c *Client) SetAuth(username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != "" {
		return ErrAlreadyLoggedIn
	}
	c.username = username
	c.password = password
	return nil
}

func (c *Client) credentials() (string, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username, c.password, c.username != "" && c.password != ""
}

var _ ClientContract = (*Client)(nil)
