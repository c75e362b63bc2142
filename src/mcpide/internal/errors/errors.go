package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// DuplicateRequestError reports that a request id is already in flight on the same connection.
	DuplicateRequestError = New("duplicate request id")
	// ConnectionClosedError reports that the peer went away before an operation completed.
	ConnectionClosedError = New("connection closed")
	// ServerNotStartedError reports that an operation needs a listening server.
	ServerNotStartedError = New("server not started")
	// DuplicateReplyError reports a second reply to a request that was already answered.
	DuplicateReplyError = New("request already answered")
	// TooManyPendingError reports that the pending request table is full.
	TooManyPendingError = New("Too many pending requests")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	return stderr.Is(e, DuplicateRequestError)
}
