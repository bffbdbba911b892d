// Package b64 implements a streaming base64 codec (standard alphabet)
// whose encoder and decoder expose their bit-accumulation state as an
// explicit value, so a value can be encoded or decoded across an
// arbitrary number of buffer splits without ever needing to see the
// whole value at once.
package b64

import "fmt"

// Phase names a point in the 4-base64-digit / 3-byte cycle.
type Phase int

const (
	B0 Phase = iota // nothing pending; ready to start a new group
	B6              // 6 bits pending (decoder only: after 1st digit)
	B4              // 4 bits pending
	B2              // 2 bits pending
	P1              // decoder only: one '=' consumed, one more expected
	P0              // decoder only: padding complete
)

// DecodeState is the decoder's resumable bit-accumulator.
type DecodeState struct {
	Phase   Phase
	Partial byte
}

// EncodeState is the encoder's resumable bit-accumulator.
type EncodeState struct {
	Phase   Phase
	Partial byte
}

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// InvalidCharError reports a non-base64, non-'=' byte in decoder input.
type InvalidCharError struct {
	Byte byte
}

func (e InvalidCharError) Error() string {
	return fmt.Sprintf("b64: invalid character 0x%02x", e.Byte)
}

var (
	// ErrUnexpectedPad is returned when '=' appears in a phase where
	// padding is not legal (only B4, B2 and P1 accept it).
	ErrUnexpectedPad = fmt.Errorf("b64: unexpected padding character")
	// ErrDataAfterPad is returned when ordinary data follows padding.
	ErrDataAfterPad = fmt.Errorf("b64: data after padding")
	// ErrTruncated is returned by DecodeFlush when the stream ends in a
	// phase other than B0 or P0.
	ErrTruncated = fmt.Errorf("b64: truncated base64 data")
)

var sixBits [256]int8

func init() {
	for i := range sixBits {
		sixBits[i] = -1
	}
	for i, c := range alphabet {
		sixBits[byte(c)] = int8(i)
	}
}

// Decode decodes src, appending decoded bytes to dst, and returns the
// state to resume with on the next call.
func Decode(state DecodeState, src []byte, dst []byte) (DecodeState, []byte, error) {
	for _, c := range src {
		if c == '=' {
			switch state.Phase {
			case B4:
				state.Phase = P1
			case B2:
				state.Phase = P0
			case P1:
				state.Phase = P0
			default:
				return state, dst, ErrUnexpectedPad
			}
			continue
		}

		v := sixBits[c]
		if v < 0 {
			return state, dst, InvalidCharError{Byte: c}
		}

		switch state.Phase {
		case B0:
			state.Partial = byte(v) << 2
			state.Phase = B6
		case B6:
			dst = append(dst, state.Partial|byte(v)>>4)
			state.Partial = (byte(v) & 0x0F) << 4
			state.Phase = B4
		case B4:
			dst = append(dst, state.Partial|byte(v)>>2)
			state.Partial = (byte(v) & 0x03) << 6
			state.Phase = B2
		case B2:
			dst = append(dst, state.Partial|byte(v))
			state.Partial = 0
			state.Phase = B0
		default: // P1, P0
			return state, dst, ErrDataAfterPad
		}
	}
	return state, dst, nil
}

// DecodeFlush checks that a decode stream ended in a valid final phase.
func DecodeFlush(state DecodeState) error {
	if state.Phase == B0 || state.Phase == P0 {
		return nil
	}
	return ErrTruncated
}

// DecodeAll is a convenience wrapper for decoding a complete, self
// contained base64 value in one call.
func DecodeAll(src []byte) ([]byte, error) {
	state, dst, err := Decode(DecodeState{}, src, nil)
	if err != nil {
		return nil, err
	}
	if err := DecodeFlush(state); err != nil {
		return nil, err
	}
	return dst, nil
}

// Encode encodes src, appending base64 digits to dst, and returns the
// state to resume with on the next call. No padding is emitted here;
// call EncodeFlush once there is no more input.
func Encode(state EncodeState, src []byte, dst []byte) (EncodeState, []byte) {
	for _, b := range src {
		switch state.Phase {
		case B0:
			dst = append(dst, alphabet[b>>2])
			state.Partial = (b & 0x03) << 4
			state.Phase = B2
		case B2:
			dst = append(dst, alphabet[state.Partial|b>>4])
			state.Partial = (b & 0x0F) << 2
			state.Phase = B4
		case B4:
			dst = append(dst, alphabet[state.Partial|b>>6])
			dst = append(dst, alphabet[b&0x3F])
			state.Partial = 0
			state.Phase = B0
		}
	}
	return state, dst
}

// EncodeFlush emits the final sextet (if any) padded with '=' to the
// next multiple of 4 digits.
func EncodeFlush(state EncodeState, dst []byte) []byte {
	switch state.Phase {
	case B2:
		dst = append(dst, alphabet[state.Partial], '=', '=')
	case B4:
		dst = append(dst, alphabet[state.Partial], '=')
	}
	return dst
}

// EncodeAll is a convenience wrapper for encoding a complete value in
// one call.
func EncodeAll(src []byte) []byte {
	state, dst := Encode(EncodeState{}, src, nil)
	return EncodeFlush(state, dst)
}
