package idoit

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	MethodLogin     = "idoit.login"
	MethodLogout    = "idoit.logout"
	MethodVersion   = "idoit.version"
	MethodSearch    = "idoit.search"
	MethodConstants = "idoit.constants"
)

// Login creates a session from the configured username and password.
// The session id is kept and sent with every following call. Many short
// lived logins can exhaust i-doit's session table, so long running callers
// should log in once and reuse the session.
func (c *Client) Login(ctx context.Context) (*LoginResult, error) {
	if _, _, ok := c.credentials(); !ok {
		return nil, ErrMissingCredentials
	}
	if c.Session() != "" {
		return nil, ErrAlreadyLoggedIn
	}

	raw, err := c.dispatch(ctx, defaultRequestID, MethodLogin, Params{"language": c.language}, true)
	if err != nil {
		return nil, err
	}
	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("error decoding %s result: %w", MethodLogin, err)
	}
	if res.SessionID == "" {
		return nil, errNoSessionID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != "" {
		return nil, ErrAlreadyLoggedIn
	}
	c.session = res.SessionID
	return &res, nil
}

// Logout ends the session on the i-doit side and then forgets it locally.
// On failure the session is kept.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.Call(ctx, MethodLogout, nil); err != nil {
		return err
	}
	c.SetSession("")
	return nil
}

func (c *Client) Version(ctx context.Context) (*VersionResult, error) {
	return call[VersionResult](ctx, c, MethodVersion, nil)
}

func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	res, err := call[[]SearchResult](ctx, c, MethodSearch, Params{"q": query})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

func (c *Client) Constants(ctx context.Context) (*Constants, error) {
	return call[Constants](ctx, c, MethodConstants, nil)
}
