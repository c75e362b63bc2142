// Package handshake validates the HTTP upgrade request that opens an MCP WebSocket and writes the server's reply.
package handshake

import (
	"bufio"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// AuthHeader carries the bearer token advertised in the lock file.
	AuthHeader = "x-claude-code-ide-authorization"

	_acceptGUID        = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"
	_supportedVersion  = "13"
	_headerUpgrade     = "Upgrade"
	_headerConnection  = "Connection"
	_headerKey         = "Sec-WebSocket-Key"
	_headerVersion     = "Sec-WebSocket-Version"
	_headerSubprotocol = "Sec-WebSocket-Protocol"
)

// Reasons reported for rejected upgrades.
const (
	ReasonMethod       = "upgrade request must use GET"
	ReasonUpgrade      = "missing or invalid Upgrade header"
	ReasonConnection   = "missing or invalid Connection header"
	ReasonVersion      = "unsupported Sec-WebSocket-Version"
	ReasonKey          = "missing Sec-WebSocket-Key"
	ReasonMissingToken = "missing authentication token"
	ReasonInvalidToken = "invalid authentication token"
	ReasonMalformed    = "malformed upgrade request"
)

// UpgradeError is a rejected upgrade. Status is the HTTP status to reply with.
type UpgradeError struct {
	Status int
	Reason string
}

// Error is an implementation of the error interface.
func (e *UpgradeError) Error() string {
	return fmt.Sprintf("websocket upgrade rejected (%d): %s", e.Status, e.Reason)
}

// ReadRequest parses the upgrade request from r. Any bytes the client sent after the request stay buffered in r.
func ReadRequest(r *bufio.Reader) (*http.Request, error) {
	req, err := http.ReadRequest(r)
	if err != nil {
		return nil, &UpgradeError{Status: http.StatusBadRequest, Reason: ReasonMalformed}
	}
	return req, nil
}

// ValidateUpgrade checks that req is a well formed RFC 6455 opening handshake.
func ValidateUpgrade(req *http.Request) error {
	if req.Method != http.MethodGet {
		return badRequest(ReasonMethod)
	}

	if !strings.EqualFold(strings.TrimSpace(req.Header.Get(_headerUpgrade)), "websocket") {
		return badRequest(ReasonUpgrade)
	}

	connection := strings.ToLower(strings.Join(req.Header.Values(_headerConnection), ","))
	if !strings.Contains(connection, "upgrade") {
		return badRequest(ReasonConnection)
	}

	if strings.TrimSpace(req.Header.Get(_headerVersion)) != _supportedVersion {
		return badRequest(ReasonVersion)
	}

	if strings.TrimSpace(req.Header.Get(_headerKey)) == "" {
		return badRequest(ReasonKey)
	}

	return nil
}

// Authenticate checks the bearer token presented in AuthHeader against expected.
func Authenticate(req *http.Request, expected string) error {
	provided := req.Header.Get(AuthHeader)
	if provided == "" {
		return &UpgradeError{Status: http.StatusUnauthorized, Reason: ReasonMissingToken}
	}
	if !ValidateToken(provided, expected) {
		return &UpgradeError{Status: http.StatusUnauthorized, Reason: ReasonInvalidToken}
	}
	return nil
}

// ValidateToken compares tokens in constant time. Tokens of different length are rejected without inspecting their content.
func ValidateToken(provided, expected string) bool {
	if expected == "" || len(provided) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

// ComputeAcceptKey derives Sec-WebSocket-Accept from the client's Sec-WebSocket-Key.
func ComputeAcceptKey(clientKey string) string {
	sum := sha1.Sum([]byte(clientKey + _acceptGUID))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// ClientKey returns the trimmed Sec-WebSocket-Key of req.
func ClientKey(req *http.Request) string {
	return strings.TrimSpace(req.Header.Get(_headerKey))
}

// RequestedSubprotocol returns the first subprotocol offered by the client, if any.
func RequestedSubprotocol(req *http.Request) string {
	for _, value := range req.Header.Values(_headerSubprotocol) {
		for _, proto := range strings.Split(value, ",") {
			if proto = strings.TrimSpace(proto); proto != "" {
				return proto
			}
		}
	}
	return ""
}

// WriteAccept writes the 101 Switching Protocols response.
func WriteAccept(w io.Writer, clientKey string, subprotocol string) error {
	var b strings.Builder
	b.WriteString("HTTP/1.1 101 Switching Protocols\r\n")
	b.WriteString("Upgrade: websocket\r\n")
	b.WriteString("Connection: Upgrade\r\n")
	fmt.Fprintf(&b, "Sec-WebSocket-Accept: %s\r\n", ComputeAcceptKey(clientKey))
	if subprotocol != "" {
		fmt.Fprintf(&b, "%s: %s\r\n", _headerSubprotocol, subprotocol)
	}
	b.WriteString("\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteReject writes an empty error response that tells the client the socket is about to close.
func WriteReject(w io.Writer, status int) error {
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\nContent-Length: 0\r\nConnection: close\r\n\r\n", status, http.StatusText(status))
	return err
}

func badRequest(reason string) *UpgradeError {
	return &UpgradeError{Status: http.StatusBadRequest, Reason: reason}
}
