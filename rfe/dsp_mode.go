package rfe

import "bytes"

// The device's wire representation for DSP mode, input stage, and tracking
// status acknowledgements isn't pinned down by any documented fixture, so
// these prefixes follow the established "#C2-<letter>:" config-echo
// convention used by the documented Config/SetupInfo frames.
var (
	dspModePrefix       = []byte("#C2-p:")
	inputStagePrefix    = []byte("#C2-a:")
	trackingStatusPrefix = []byte("#C2-K:")
)

// decodeDspMode decodes a "#C2-p:<mode:01>\r\n" frame.
func decodeDspMode(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, dspModePrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(dspModePrefix):]
	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	v, ok := parseZeroPaddedInt(string(rest[:eol]))
	if !ok {
		return nil, 0, errInvalid
	}
	total := len(dspModePrefix) + eol + eolWidth
	return DspMode(v), total, nil
}

// decodeInputStage decodes a "#C2-a:<stage:01>\r\n" frame.
func decodeInputStage(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, inputStagePrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(inputStagePrefix):]
	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	if eol != 1 {
		return nil, 0, errInvalid
	}
	total := len(inputStagePrefix) + eol + eolWidth
	return InputStage(rest[0]), total, nil
}

// decodeTrackingStatus decodes a "#C2-K:<0|1>\r\n" frame.
func decodeTrackingStatus(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, trackingStatusPrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(trackingStatusPrefix):]
	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	if eol != 1 || (rest[0] != '0' && rest[0] != '1') {
		return nil, 0, errInvalid
	}
	total := len(trackingStatusPrefix) + eol + eolWidth
	return TrackingStatus{Enabled: rest[0] == '1'}, total, nil
}

func (DspMode) messageKind() string        { return "DspMode" }
func (InputStage) messageKind() string     { return "InputStage" }
func (TrackingStatus) messageKind() string { return "TrackingStatus" }
