package idoit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/akyaiy/godoit/internal/server/rpc"
	"github.com/google/uuid"
)

const (
	HeaderSession  = "X-RPC-Auth-Session"
	HeaderUsername = "X-RPC-Auth-Username"
	HeaderPassword = "X-RPC-Auth-Password"

	defaultRequestID = 1
)

type authMode string

const (
	authNone     authMode = "none"
	authSession  authMode = "session"
	authBasic    authMode = "basic"
	authRPCLogin authMode = "login-headers"
)

// Call invokes method with the default request id.
func (c *Client) Call(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	return c.CallWithID(ctx, defaultRequestID, method, params)
}

// CallWithID invokes method and returns the raw "result" member, nil when
// the result is null.
func (c *Client) CallWithID(ctx context.Context, id int, method string, params Params) (json.RawMessage, error) {
	return c.dispatch(ctx, id, method, params, false)
}

// dispatch performs a single POST. With login set, credentials travel in the
// X-RPC-Auth-Username/Password headers; otherwise the session wins over
// basic auth, and without either the request is sent unauthenticated.
func (c *Client) dispatch(ctx context.Context, id int, method string, params Params, login bool) (json.RawMessage, error) {
	merged := make(map[string]any, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	merged["apikey"] = c.apikey

	body, err := json.Marshal(rpc.NewRequest(id, method, merged))
	if err != nil {
		return nil, fmt.Errorf("error encoding request %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building request %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	mode := c.authorize(req, login)

	reqUUID := uuid.New().String()
	c.log.Debug("rpc request",
		slog.String("request-uuid", reqUUID),
		slog.String("method", method),
		slog.Int("id", id),
		slog.String("auth", string(mode)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response to %s: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("rpc request failed",
			slog.String("request-uuid", reqUUID),
			slog.Int("status", resp.StatusCode))
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	envelope, err := rpc.DecodeResponse(data)
	if errors.Is(err, rpc.ErrEmptyEnvelope) {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding response to %s: %w", method, err)
	}
	if envelope.Error != nil {
		c.log.Debug("rpc error returned",
			slog.String("request-uuid", reqUUID),
			slog.Int("code", envelope.Error.Code),
			slog.String("message", envelope.Error.Message))
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
			Data:       envelope.Error.Data,
			Body:       string(data),
		}
	}
	return envelope.Result, nil
}

func (c *Client) authorize(req *http.Request, login bool) authMode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case login:
		req.Header.Set(HeaderUsername, c.username)
		req.Header.Set(HeaderPassword, c.password)
		return authRPCLogin
	case c.session != "":
		req.Header.Set(HeaderSession, c.session)
		return authSession
	case c.username != "" && c.password != "":
		req.SetBasicAuth(c.username, c.password)
		return authBasic
	default:
		return authNone
	}
}

func call[T any](ctx context.Context, c *Client, method string, params Params) (*T, error) {
	raw, err := c.Call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	var out T
	if raw == nil {
		return &out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("error decoding %s result: %w", method, err)
	}
	return &out, nil
}
