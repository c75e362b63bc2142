// Package wsframe parses and serializes the subset of RFC 6455 frames spoken on the MCP socket.
// Messages are always carried in a single final TEXT frame; fragmentation and extensions are rejected.
package wsframe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Opcode identifies the type of a frame.
type Opcode byte

// Opcodes defined by RFC 6455.
const (
	OpContinuation Opcode = 0x0
	OpText         Opcode = 0x1
	OpBinary       Opcode = 0x2
	OpClose        Opcode = 0x8
	OpPing         Opcode = 0x9
	OpPong         Opcode = 0xA
)

// Close status codes used by the server.
const (
	CloseNormal          uint16 = 1000
	CloseGoingAway       uint16 = 1001
	CloseProtocolError   uint16 = 1002
	CloseUnsupportedData uint16 = 1003
	CloseNoStatus        uint16 = 1005
	CloseMessageTooBig   uint16 = 1009
	CloseInternalError   uint16 = 1011
)

const (
	// MaxPayload is the largest payload accepted in a single frame.
	MaxPayload = 1 << 20

	_maxControlPayload = 125
	_maxCloseReason    = _maxControlPayload - 2

	_finBit      = 0x80
	_reserved    = 0x70
	_opcodeMask  = 0x0f
	_maskBit     = 0x80
	_lengthMask  = 0x7f
	_length16    = 126
	_length64    = 127
	_maskKeySize = 4
)

// Reasons reported when a frame violates the protocol.
const (
	ReasonUnmasked        = "Client frames must be masked"
	ReasonServerMasked    = "Server frames must not be masked"
	ReasonTooLarge        = "Frame too large"
	ReasonFragmented      = "Fragmented messages are not supported"
	ReasonBinary          = "Binary frames are not supported"
	ReasonReservedBits    = "Reserved bits must be zero"
	ReasonUnknownOpcode   = "Unknown opcode"
	ReasonControlTooLarge = "Control frame payload too large"
	ReasonControlFragment = "Control frames must not be fragmented"
)

// ErrNeedMoreData is returned by ParseFrame when the buffer does not yet hold a complete frame.
// No input is consumed in that case.
var ErrNeedMoreData = errors.New("need more data")

// ProtocolError is a frame level violation. The connection must be closed with Code and Reason.
type ProtocolError struct {
	Code   uint16
	Reason string
}

// Error is an implementation of the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("websocket protocol error %d: %s", e.Code, e.Reason)
}

// Frame is a single decoded frame.
type Frame struct {
	Fin     bool
	Opcode  Opcode
	Masked  bool
	Length  uint64
	MaskKey [4]byte
	Payload []byte
}

// IsControl reports whether the opcode is a control opcode.
func (o Opcode) IsControl() bool {
	return o&0x8 != 0
}

func (o Opcode) String() string {
	switch o {
	case OpContinuation:
		return "continuation"
	case OpText:
		return "text"
	case OpBinary:
		return "binary"
	case OpClose:
		return "close"
	case OpPing:
		return "ping"
	case OpPong:
		return "pong"
	default:
		return fmt.Sprintf("opcode(%d)", byte(o))
	}
}

// ParseFrame decodes one client to server frame from the start of buf.
// It returns the frame and the number of bytes it occupied, ErrNeedMoreData when buf holds a partial frame,
// or a *ProtocolError. The returned payload is unmasked and does not alias buf.
func ParseFrame(buf []byte, maxPayload int) (Frame, int, error) {
	return parse(buf, maxPayload, true)
}

// ParseServerFrame decodes one server to client frame. It is used when playing the client role.
func ParseServerFrame(buf []byte, maxPayload int) (Frame, int, error) {
	return parse(buf, maxPayload, false)
}

func parse(buf []byte, maxPayload int, fromClient bool) (Frame, int, error) {
	if len(buf) < 2 {
		return Frame{}, 0, ErrNeedMoreData
	}

	f := Frame{
		Fin:    buf[0]&_finBit != 0,
		Opcode: Opcode(buf[0] & _opcodeMask),
		Masked: buf[1]&_maskBit != 0,
	}

	if buf[0]&_reserved != 0 {
		return Frame{}, 0, protocolError(CloseProtocolError, ReasonReservedBits)
	}

	switch f.Opcode {
	case OpText, OpClose, OpPing, OpPong:
	case OpContinuation:
		return Frame{}, 0, protocolError(CloseUnsupportedData, ReasonFragmented)
	case OpBinary:
		return Frame{}, 0, protocolError(CloseUnsupportedData, ReasonBinary)
	default:
		return Frame{}, 0, protocolError(CloseProtocolError, ReasonUnknownOpcode)
	}

	if !f.Fin {
		if f.Opcode.IsControl() {
			return Frame{}, 0, protocolError(CloseProtocolError, ReasonControlFragment)
		}
		return Frame{}, 0, protocolError(CloseUnsupportedData, ReasonFragmented)
	}

	if fromClient && !f.Masked {
		return Frame{}, 0, protocolError(CloseProtocolError, ReasonUnmasked)
	}
	if !fromClient && f.Masked {
		return Frame{}, 0, protocolError(CloseProtocolError, ReasonServerMasked)
	}

	offset := 2
	length := uint64(buf[1] & _lengthMask)
	switch length {
	case _length16:
		if len(buf) < offset+2 {
			return Frame{}, 0, ErrNeedMoreData
		}
		length = uint64(binary.BigEndian.Uint16(buf[offset:]))
		offset += 2
	case _length64:
		if len(buf) < offset+8 {
			return Frame{}, 0, ErrNeedMoreData
		}
		length = binary.BigEndian.Uint64(buf[offset:])
		offset += 8
	}

	if f.Opcode.IsControl() && length > _maxControlPayload {
		return Frame{}, 0, protocolError(CloseProtocolError, ReasonControlTooLarge)
	}
	if length > uint64(maxPayload) {
		return Frame{}, 0, protocolError(CloseMessageTooBig, ReasonTooLarge)
	}
	f.Length = length

	if f.Masked {
		if len(buf) < offset+_maskKeySize {
			return Frame{}, 0, ErrNeedMoreData
		}
		copy(f.MaskKey[:], buf[offset:offset+_maskKeySize])
		offset += _maskKeySize
	}

	end := offset + int(length)
	if len(buf) < end {
		return Frame{}, 0, ErrNeedMoreData
	}

	f.Payload = make([]byte, length)
	copy(f.Payload, buf[offset:end])
	if f.Masked {
		applyMask(f.Payload, f.MaskKey)
	}

	return f, end, nil
}

// SerializeFrame encodes a final, unmasked server to client frame.
func SerializeFrame(op Opcode, payload []byte) []byte {
	out := appendHeader(make([]byte, 0, headerSize(len(payload), false)+len(payload)), op, len(payload), false)
	return append(out, payload...)
}

// SerializeMaskedFrame encodes a final frame masked with key, as a client would send it.
func SerializeMaskedFrame(op Opcode, payload []byte, key [4]byte) []byte {
	out := appendHeader(make([]byte, 0, headerSize(len(payload), true)+len(payload)), op, len(payload), true)
	out = append(out, key[:]...)
	start := len(out)
	out = append(out, payload...)
	applyMask(out[start:], key)
	return out
}

// ClosePayload builds the body of a CLOSE frame. The reason is truncated on a rune boundary to fit a control frame.
func ClosePayload(code uint16, reason string) []byte {
	if len(reason) > _maxCloseReason {
		cut := _maxCloseReason
		for cut > 0 && !utf8.RuneStart(reason[cut]) {
			cut--
		}
		reason = reason[:cut]
	}
	out := make([]byte, 2, 2+len(reason))
	binary.BigEndian.PutUint16(out, code)
	return append(out, reason...)
}

// ParseClosePayload extracts the status code and reason from the body of a CLOSE frame.
func ParseClosePayload(payload []byte) (uint16, string) {
	if len(payload) < 2 {
		return CloseNoStatus, ""
	}
	return binary.BigEndian.Uint16(payload), string(payload[2:])
}

func headerSize(n int, masked bool) int {
	size := 2
	switch {
	case n > 0xffff:
		size += 8
	case n >= _length16:
		size += 2
	}
	if masked {
		size += _maskKeySize
	}
	return size
}

func appendHeader(out []byte, op Opcode, n int, masked bool) []byte {
	var maskBit byte
	if masked {
		maskBit = _maskBit
	}

	out = append(out, _finBit|byte(op))
	switch {
	case n > 0xffff:
		out = append(out, maskBit|_length64)
		out = binary.BigEndian.AppendUint64(out, uint64(n))
	case n >= _length16:
		out = append(out, maskBit|_length16)
		out = binary.BigEndian.AppendUint16(out, uint16(n))
	default:
		out = append(out, maskBit|byte(n))
	}
	return out
}

func applyMask(b []byte, key [4]byte) {
	for i := range b {
		b[i] ^= key[i%_maskKeySize]
	}
}

func protocolError(code uint16, reason string) *ProtocolError {
	return &ProtocolError{Code: code, Reason: reason}
}
