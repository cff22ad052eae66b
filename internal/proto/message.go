// Package proto defines the JSON bodies exchanged over the HTTP API.
package proto

const (
	// HeaderFrom carries the caller's participant name.
	HeaderFrom = "From"
	// HeaderUser is accepted as the caller's name when HeaderFrom is absent.
	HeaderUser = "User"
	// HeaderRequestID echoes the id assigned to each request.
	HeaderRequestID = "X-Request-ID"
	// QueryLimit bounds how many messages GET /messages returns.
	QueryLimit = "limit"
)

// JoinRequest registers a participant.
type JoinRequest struct {
	Name string `json:"name" binding:"required"`
}

// PostMessageRequest is a chat line sent by the caller named in HeaderFrom.
type PostMessageRequest struct {
	To   string `json:"to" binding:"required"`
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// Participant is an entry of GET /participants.
type Participant struct {
	Name string `json:"name"`
	// LastStatus is the last heartbeat in Unix milliseconds.
	LastStatus int64 `json:"lastStatus"`
}

// Message is an entry of GET /messages.
type Message struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
