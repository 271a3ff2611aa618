package telemetry

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

const (
	// LengthPrefixSize is the big-endian length header in front of each frame.
	LengthPrefixSize = 2
	// MaxFrameSize bounds one encoded record.
	MaxFrameSize = 512
)

var (
	ErrFrameTooLarge = errors.New("telemetry: frame too large")
	ErrFrameEmpty    = errors.New("telemetry: frame empty")
)

// Record is one forwarded bus message.
type Record struct {
	Seq      uint32 `cbor:"1,keyasint"`
	Topic    string `cbor:"2,keyasint"`
	Retained bool   `cbor:"3,keyasint,omitempty"`
	Payload  any    `cbor:"4,keyasint"`
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic("telemetry: cbor enc mode: " + err.Error())
	}
}

// FrameWriter writes length-prefixed CBOR records to a serial port.
type FrameWriter struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
}

func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w, buf: make([]byte, 0, LengthPrefixSize+MaxFrameSize)}
}

// WriteRecord encodes r and writes it as one frame with a single Write call.
func (fw *FrameWriter) WriteRecord(r Record) error {
	data, err := encMode.Marshal(r)
	if err != nil {
		return err
	}
	return fw.WriteFrame(data)
}

func (fw *FrameWriter) WriteFrame(data []byte) error {
	if len(data) == 0 {
		return ErrFrameEmpty
	}
	if len(data) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.buf = binary.BigEndian.AppendUint16(fw.buf[:0], uint16(len(data)))
	fw.buf = append(fw.buf, data...)
	_, err := fw.w.Write(fw.buf)
	return err
}

// ReadFrame reads one frame body from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(hdr[:])
	if n == 0 {
		return nil, ErrFrameEmpty
	}
	if int(n) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// DecodeRecord decodes a frame body. The payload is left as raw CBOR for the
// caller to decode into the type its topic implies.
func DecodeRecord(data []byte) (Record, cbor.RawMessage, error) {
	var raw struct {
		Seq      uint32          `cbor:"1,keyasint"`
		Topic    string          `cbor:"2,keyasint"`
		Retained bool            `cbor:"3,keyasint,omitempty"`
		Payload  cbor.RawMessage `cbor:"4,keyasint"`
	}
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return Record{}, nil, err
	}
	return Record{Seq: raw.Seq, Topic: raw.Topic, Retained: raw.Retained}, raw.Payload, nil
}
