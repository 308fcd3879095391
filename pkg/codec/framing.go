package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kmechain/kmego/pkg/kerr"
)

// MaxFrameSize is the implementation-defined cap on a single framed message.
// Exceeding it is a protocol violation rather than an unbounded allocation.
const MaxFrameSize = 8 << 20 // 8 MiB

// WriteFrame writes { u64 big-endian length || payload } to w.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: codec: frame of %d bytes exceeds max %d", kerr.ErrProtocol, len(payload), MaxFrameSize)
	}
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("codec: write frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("codec: write frame payload: %w", err)
	}
	return nil
}

// ReadFrame blocks until a full length-prefixed frame has been read, or
// returns an error if the declared length exceeds MaxFrameSize.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("codec: read frame length: %w", err)
	}
	n := binary.BigEndian.Uint64(lenBuf[:])
	if n > MaxFrameSize {
		return nil, fmt.Errorf("%w: codec: declared frame length %d exceeds max %d", kerr.ErrProtocol, n, MaxFrameSize)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("codec: read frame payload: %w", err)
	}
	return payload, nil
}

// EncodeFrame is Encode followed by frame-wrapping, for callers that build
// and send a message in one step.
func EncodeFrame(w io.Writer, x any) error {
	b, err := Encode(x)
	if err != nil {
		return err
	}
	return WriteFrame(w, b)
}

// DecodeFrame reads one frame and decodes it into out.
func DecodeFrame(r io.Reader, out any) error {
	b, err := ReadFrame(r)
	if err != nil {
		return err
	}
	return Decode(b, out)
}
