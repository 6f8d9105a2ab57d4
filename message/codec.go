package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrPlainText marks a text frame that is an informational line rather than a message.
	ErrPlainText = errors.New("plain text frame")

	// ErrMalformed marks a frame that looked structured but could not be decoded.
	ErrMalformed = errors.New("malformed message")

	errNilMessage = errors.New("nil message")
)

// FrameKind is the WebSocket data frame type. Values match the RFC 6455 opcodes.
type FrameKind int

const (
	TextFrame   FrameKind = 1
	BinaryFrame FrameKind = 2
)

func (k FrameKind) String() string {
	switch k {
	case TextFrame:
		return "text"
	case BinaryFrame:
		return "binary"
	default:
		return fmt.Sprintf("frame(%d)", int(k))
	}
}

// Wire is the loose JSON shape of a message: one optional field per variant.
// Unit variants are present whenever their key is, whatever the payload, null included.
type Wire struct {
	Play        *Play           `json:"Play,omitempty" jsonschema:"title=Play,description=Load and start a media item"`
	Stop        json.RawMessage `json:"Stop,omitempty" jsonschema:"description=Stop playback (payload ignored)"`
	TogglePause json.RawMessage `json:"TogglePause,omitempty" jsonschema:"description=Pause or resume (payload ignored)"`
	Command     *Command        `json:"Command,omitempty" jsonschema:"description=Free text command"`
	Seek        *Seek           `json:"Seek,omitempty" jsonschema:"description=Relative seek in seconds"`
	State       *State          `json:"State,omitempty" jsonschema:"description=Playback surface position report"`
	Error       json.RawMessage `json:"Error,omitempty" jsonschema:"description=Protocol error text"`
}

var emptyPayload = json.RawMessage(`""`)

// ToWire converts a message into its wire shape.
func ToWire(m Message) Wire {
	var w Wire
	switch v := m.(type) {
	case Play:
		w.Play = &v
	case Stop:
		w.Stop = emptyPayload
	case TogglePause:
		w.TogglePause = emptyPayload
	case Command:
		w.Command = &v
	case Seek:
		w.Seek = &v
	case State:
		w.State = &v
	case Error:
		w.Error, _ = json.Marshal(v.Message)
	}
	return w
}

// Message picks the populated variant with the highest priority, or nil when none is set.
func (w Wire) Message() Message {
	switch {
	case w.Play != nil:
		return *w.Play
	case w.Seek != nil:
		return *w.Seek
	case w.TogglePause != nil:
		return TogglePause{}
	case w.Stop != nil:
		return Stop{}
	case w.Command != nil:
		return *w.Command
	case w.State != nil:
		return *w.State
	case w.Error != nil:
		return Error{Message: errorText(w.Error)}
	default:
		return nil
	}
}

// errorText reads an Error payload. Non-string payloads are kept as raw JSON.
func errorText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	if trimmed := bytes.TrimSpace(raw); !bytes.Equal(trimmed, []byte("null")) {
		return string(trimmed)
	}
	return ""
}

// Encode serializes a message to its JSON wire form.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	return json.Marshal(ToWire(m))
}

// Decode parses a JSON wire form. Objects without a known variant decode to nil.
// A bare string naming a unit variant ("Stop", "TogglePause") is accepted as well.
func Decode(data []byte) (Message, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrMalformed)
	}

	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch Kind(name) {
		case KindStop:
			return Stop{}, nil
		case KindTogglePause:
			return TogglePause{}, nil
		default:
			return nil, nil
		}
	}

	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return w.Message(), nil
}

// DecodeFrame decodes an inbound frame. Text frames that do not look like JSON
// return ErrPlainText so the caller can log them as information.
func DecodeFrame(kind FrameKind, data []byte) (Message, error) {
	if kind == TextFrame {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '"') {
			return nil, ErrPlainText
		}
	}
	return Decode(data)
}

type commandWire struct {
	RemoteAddress string          `json:"remote_address"`
	Message       json.RawMessage `json:"message"`
}

// MarshalJSON writes {"remote_address": ..., "message": {...}}.
func (c RemoteCommand) MarshalJSON() ([]byte, error) {
	raw, err := Encode(c.Message)
	if err != nil {
		return nil, err
	}
	return json.Marshal(commandWire{RemoteAddress: c.RemoteAddress, Message: raw})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (c *RemoteCommand) UnmarshalJSON(data []byte) error {
	var w commandWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	c.RemoteAddress = w.RemoteAddress
	c.Message = nil
	if len(w.Message) == 0 || string(w.Message) == "null" {
		return nil
	}
	m, err := Decode(w.Message)
	if err != nil {
		return err
	}
	c.Message = m
	return nil
}

// EncodeCommand serializes a remote command.
func EncodeCommand(c RemoteCommand) ([]byte, error) {
	return json.Marshal(c)
}

// DecodeCommand parses a remote command.
func DecodeCommand(data []byte) (RemoteCommand, error) {
	var c RemoteCommand
	err := json.Unmarshal(data, &c)
	return c, err
}
