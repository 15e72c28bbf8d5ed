package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// RPCRequest is the request envelope understood by i-doit.
// i-doit reads the protocol version from "version", not from "jsonrpc".
type RPCRequest struct {
	Version string         `json:"version"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
	ID      any            `json:"id"`
}

// RPCResponse carries either Result or Error. On the wire a success always
// has a "result" member, null included, and an error never has one.
type RPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result"`
	Error   *RPCError `json:"error,omitempty"`
}

func (r RPCResponse) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			JSONRPC string    `json:"jsonrpc"`
			ID      any       `json:"id"`
			Error   *RPCError `json:"error"`
		}{r.JSONRPC, r.ID, r.Error})
	}
	return json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		ID      any    `json:"id"`
		Result  any    `json:"result"`
	}{r.JSONRPC, r.ID, r.Result})
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// RawResponse is a response envelope with the result left undecoded.
// A null result is kept as a nil Result.
type RawResponse struct {
	Result json.RawMessage
	Error  *RPCError
}

const (
	JSONRPCVersion = "2.0"
)

var ErrEmptyEnvelope = errors.New("response carries neither result nor error")

func NewRequest(id int, method string, params map[string]any) *RPCRequest {
	return &RPCRequest{
		Version: JSONRPCVersion,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// DecodeResponse splits a response body into its result and error members.
// A present "result" key counts even when its value is null.
func DecodeResponse(data []byte) (*RawResponse, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("error decoding response envelope: %w", err)
	}

	raw := &RawResponse{}
	if errMember, ok := members["error"]; ok && !bytes.Equal(bytes.TrimSpace(errMember), []byte("null")) {
		var rpcErr RPCError
		if err := json.Unmarshal(errMember, &rpcErr); err != nil {
			return nil, fmt.Errorf("error decoding error member: %w", err)
		}
		raw.Error = &rpcErr
		return raw, nil
	}
	if result, ok := members["result"]; ok {
		if !bytes.Equal(bytes.TrimSpace(result), []byte("null")) {
			raw.Result = result
		}
		return raw, nil
	}
	return nil, ErrEmptyEnvelope
}
