package rfe

import "bytes"

var temperaturePrefix = []byte("#C3-T:")

// decodeTemperature decodes a "#C3-T:<temp:+04>\r\n" frame.
func decodeTemperature(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, temperaturePrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(temperaturePrefix):]

	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	line := string(rest[:eol])
	v, ok := parseZeroPaddedInt(line)
	if !ok {
		return nil, 0, errInvalid
	}

	total := len(temperaturePrefix) + eol + eolWidth
	return Temperature{ValueDBm: v}, total, nil
}
