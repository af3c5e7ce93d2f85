package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
)

// Bearer credential prefix stripped by the authentication guard
const BearerPrefix = "Bearer"

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypePNG       = "image/png"
	ContentTypeMultipart = "multipart/form-data"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized  = "please authenticate"
	MsgNotFound      = "resource not found"
	MsgBadRequest    = "invalid request"
	MsgInternalError = "internal server error"
	MsgTooManyReqs   = "too many requests"
)
