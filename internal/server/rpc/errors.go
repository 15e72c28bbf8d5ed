package rpc

const (
	ErrParseError  = -32700
	ErrParseErrorS = "Parse error"

	ErrInvalidRequest  = -32600
	ErrInvalidRequestS = "Invalid Request"

	ErrMethodNotFound  = -32601
	ErrMethodNotFoundS = "Method not found"

	ErrInvalidParams  = -32602
	ErrInvalidParamsS = "Invalid params"

	ErrInternalError  = -32603
	ErrInternalErrorS = "Internal error"

	ErrAuthFailed  = -32099
	ErrAuthFailedS = "Authentication failed"

	ErrInvalidAPIKey  = -32098
	ErrInvalidAPIKeyS = "Invalid API key"

	ErrSessionExpired  = -32097
	ErrSessionExpiredS = "Session expired or unknown"

	ErrObjectNotFound  = -32001
	ErrObjectNotFoundS = "Object not found"
)
