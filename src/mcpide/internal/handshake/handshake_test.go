package handshake

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const _sampleKey = "dGhlIHNhbXBsZSBub25jZQ=="

func newUpgradeRequest() *http.Request {
	req, _ := http.NewRequest(http.MethodGet, "http://127.0.0.1/", nil)
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", _sampleKey)
	return req
}

func TestComputeAcceptKey(t *testing.T) {
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", ComputeAcceptKey(_sampleKey))
}

func TestValidateUpgrade(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *http.Request)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(r *http.Request) {},
		},
		{
			name: "case insensitive headers",
			modify: func(r *http.Request) {
				r.Header.Set("Upgrade", "WebSocket")
				r.Header.Set("Connection", "keep-alive, UPGRADE")
			},
		},
		{
			name:    "wrong method",
			modify:  func(r *http.Request) { r.Method = http.MethodPost },
			wantErr: ReasonMethod,
		},
		{
			name:    "missing upgrade",
			modify:  func(r *http.Request) { r.Header.Del("Upgrade") },
			wantErr: ReasonUpgrade,
		},
		{
			name:    "connection without upgrade",
			modify:  func(r *http.Request) { r.Header.Set("Connection", "keep-alive") },
			wantErr: ReasonConnection,
		},
		{
			name:    "old version",
			modify:  func(r *http.Request) { r.Header.Set("Sec-WebSocket-Version", "8") },
			wantErr: ReasonVersion,
		},
		{
			name:    "empty key",
			modify:  func(r *http.Request) { r.Header.Set("Sec-WebSocket-Key", " ") },
			wantErr: ReasonKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newUpgradeRequest()
			tt.modify(req)

			err := ValidateUpgrade(req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var ue *UpgradeError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, http.StatusBadRequest, ue.Status)
			assert.Equal(t, tt.wantErr, ue.Reason)
		})
	}
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		want     bool
	}{
		{name: "exact match", provided: "abc-123", expected: "abc-123", want: true},
		{name: "same length different content", provided: "abc-124", expected: "abc-123"},
		{name: "prefix", provided: "abc", expected: "abc-123"},
		{name: "longer", provided: "abc-1234", expected: "abc-123"},
		{name: "empty provided", provided: "", expected: "abc-123"},
		{name: "empty expected", provided: "", expected: ""},
		{name: "case differs", provided: "ABC-123", expected: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateToken(tt.provided, tt.expected))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	req := newUpgradeRequest()

	var ue *UpgradeError
	require.ErrorAs(t, Authenticate(req, "secret"), &ue)
	assert.Equal(t, http.StatusUnauthorized, ue.Status)
	assert.Equal(t, ReasonMissingToken, ue.Reason)

	req.Header.Set(AuthHeader, "wrong!")
	require.ErrorAs(t, Authenticate(req, "secret"), &ue)
	assert.Equal(t, ReasonInvalidToken, ue.Reason)

	req.Header.Set(AuthHeader, "secret")
	assert.NoError(t, Authenticate(req, "secret"))
}

func TestReadRequest(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: 127.0.0.1\r\nUpgrade: websocket\r\nConnection: Upgrade\r\n" +
		"Sec-WebSocket-Key: " + _sampleKey + "\r\nSec-WebSocket-Version: 13\r\n" +
		"Sec-WebSocket-Protocol: mcp, other\r\n\r\nEXTRA"
	br := bufio.NewReader(strings.NewReader(raw))

	req, err := ReadRequest(br)
	require.NoError(t, err)
	assert.NoError(t, ValidateUpgrade(req))
	assert.Equal(t, _sampleKey, ClientKey(req))
	assert.Equal(t, "mcp", RequestedSubprotocol(req))

	rest, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, "EXTRA", string(rest))

	_, err = ReadRequest(bufio.NewReader(strings.NewReader("not http\r\n\r\n")))
	var ue *UpgradeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadRequest, ue.Status)
}

func TestWriteAccept(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccept(&buf, _sampleKey, ""))

	resp, err := http.ReadResponse(bufio.NewReader(&buf), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	assert.Equal(t, "websocket", resp.Header.Get("Upgrade"))
	assert.Equal(t, "Upgrade", resp.Header.Get("Connection"))
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", resp.Header.Get("Sec-WebSocket-Accept"))
	assert.Empty(t, resp.Header.Get("Sec-WebSocket-Protocol"))

	buf.Reset()
	require.NoError(t, WriteAccept(&buf, _sampleKey, "mcp"))
	assert.Contains(t, buf.String(), "Sec-WebSocket-Protocol: mcp\r\n")
}

func TestWriteReject(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		var buf bytes.Buffer
		require.NoError(t, WriteReject(&buf, status))

		resp, err := http.ReadResponse(bufio.NewReader(&buf), nil)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode)
		assert.Equal(t, int64(0), resp.ContentLength)
		assert.True(t, resp.Close)
	}
}

func TestUpgradeErrorMessage(t *testing.T) {
	err := &UpgradeError{Status: http.StatusUnauthorized, Reason: ReasonInvalidToken}
	assert.Equal(t, "websocket upgrade rejected (401): invalid authentication token", err.Error())
}
