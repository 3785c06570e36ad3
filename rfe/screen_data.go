package rfe

import "bytes"

var screenDataPrefix = []byte("$D")

const screenDataLength = 1024

// decodeScreenData decodes a "$D<1024 bytes>\r\n" frame, the device's fixed
// 128x8 packed-column screen dump.
func decodeScreenData(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, screenDataPrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(screenDataPrefix):]
	if len(rest) < screenDataLength {
		return nil, 0, errIncomplete
	}

	var sd ScreenData
	copy(sd.Pixels[:], rest[:screenDataLength])
	sd.Timestamp = hostNow()

	afterPixels := rest[screenDataLength:]
	eolWidth, ok := consumeOptLineEnding(afterPixels)
	if !ok {
		return nil, 0, errInvalid
	}

	total := len(screenDataPrefix) + screenDataLength + eolWidth
	return sd, total, nil
}
