package rfe

import (
	"bytes"
	"encoding/binary"
	"time"
)

// SweepEncoding distinguishes the three wire encodings a Sweep may arrive
// in. All three carry the same semantic payload: an ordered vector of
// amplitudes in dBm.
type SweepEncoding int

const (
	SweepStandard SweepEncoding = iota
	SweepExt
	SweepLarge
)

// Sweep is one pass of amplitude samples across the spectrum analyzer's
// configured frequency range. The device provides no timestamp of its own;
// Timestamp records when the host received the frame.
type Sweep struct {
	Encoding      SweepEncoding
	AmplitudesDBm []float64
	Timestamp     time.Time
}

func (Sweep) messageKind() string { return "Sweep" }

// eeotBytes is the end-of-transmission escape sequence that marks an
// aborted sweep body.
var eeotBytes = []byte{0xFF, 0xFE, 0xFF, 0xFE, 0x00}

// truncationMarkerLen is the width of the fixed window scanForTruncation
// slides across the sweep body: long enough to match the 5-byte EEOT
// sentinel exactly, and the first 5 bytes of any Config/SetupInfo prefix.
const truncationMarkerLen = 5

// scanForTruncation looks for either the EEOT sentinel or the first 5 bytes
// of an embedded Config/SetupInfo frame within body. It returns the index
// to resume parsing at (the byte after the EEOT, or the start of the
// embedded frame), or -1 if no such marker is present.
func scanForTruncation(body []byte) int {
	for i := 0; i+truncationMarkerLen <= len(body); i++ {
		window := body[i : i+truncationMarkerLen]
		if bytes.Equal(window, eeotBytes) {
			return i + len(eeotBytes)
		}
		if bytes.Equal(window, configPrefix[:truncationMarkerLen]) ||
			bytes.Equal(window, saSetupInfoPrefix[:truncationMarkerLen]) ||
			bytes.Equal(window, sgSetupInfoPrefix[:truncationMarkerLen]) {
			return i
		}
	}
	return -1
}

// decodeSweepStandard decodes a "$S<n:u8><n bytes>" frame.
func decodeSweepStandard(buf []byte) (Message, int, error) {
	return decodeSweep(buf, []byte("$S"), SweepStandard, func(b []byte) (int, int, bool) {
		if len(b) < 1 {
			return 0, 0, false
		}
		n := int(b[0])
		return n, 1, true
	})
}

// decodeSweepExt decodes a "$s<n:u8><(n+1)*16 bytes>" frame.
func decodeSweepExt(buf []byte) (Message, int, error) {
	return decodeSweep(buf, []byte("$s"), SweepExt, func(b []byte) (int, int, bool) {
		if len(b) < 1 {
			return 0, 0, false
		}
		n := (int(b[0]) + 1) * 16
		return n, 1, true
	})
}

// decodeSweepLarge decodes a "$z<n:u16 BE><n bytes>" frame.
func decodeSweepLarge(buf []byte) (Message, int, error) {
	return decodeSweep(buf, []byte("$z"), SweepLarge, func(b []byte) (int, int, bool) {
		if len(b) < 2 {
			return 0, 0, false
		}
		n := int(binary.BigEndian.Uint16(b[:2]))
		return n, 2, true
	})
}

// decodeSweep implements the shared <prefix><length><length bytes> shape.
// lengthParser consumes the length field from the bytes following the
// prefix and returns (amplitudeCount, lengthFieldWidth, ok).
func decodeSweep(buf, prefix []byte, encoding SweepEncoding, lengthParser func([]byte) (int, int, bool)) (Message, int, error) {
	if !bytes.HasPrefix(buf, prefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(prefix):]

	// Scan for truncation over the length field and whatever amplitude
	// bytes have arrived so far, mirroring the device's own framing: a
	// corrupted/aborted sweep can embed an EEOT or the start of the next
	// frame anywhere from the length byte onward.
	window := rest
	if count, width, ok := lengthParser(rest); ok && width+count < len(rest) {
		window = rest[:width+count]
	}
	if idx := scanForTruncation(window); idx >= 0 {
		return nil, 0, errTruncated(rest[idx:])
	}

	n, lenWidth, ok := lengthParser(rest)
	if !ok {
		return nil, 0, errIncomplete
	}
	body := rest[lenWidth:]

	if len(body) < n {
		return nil, 0, errIncomplete
	}

	ampBytes := body[:n]
	afterAmp := body[n:]

	consumedLineEnding, ok := consumeOptLineEnding(afterAmp)
	if !ok {
		return nil, 0, errInvalid
	}

	amplitudes := make([]float64, n)
	for i, b := range ampBytes {
		amplitudes[i] = -float64(b) / 2.0
	}

	total := len(prefix) + lenWidth + n + consumedLineEnding
	return Sweep{
		Encoding:      encoding,
		AmplitudesDBm: amplitudes,
		Timestamp:     hostNow(),
	}, total, nil
}

// consumeOptLineEnding consumes a leading "\r\n" or "\r" (or nothing) and
// reports how many bytes were consumed, and whether what followed the
// amplitude bytes was a valid (possibly empty) line ending -- extra
// trailing bytes that aren't a line ending indicate the declared length
// was too short for the actual payload (Invalid, not Incomplete).
func consumeOptLineEnding(b []byte) (int, bool) {
	switch {
	case len(b) == 0:
		return 0, true
	case len(b) >= 2 && b[0] == '\r' && b[1] == '\n':
		return 2, true
	case b[0] == '\r':
		return 1, true
	default:
		return 0, false
	}
}
