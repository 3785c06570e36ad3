package rfe

// decoder is a single prefix-dispatch entry: it reports errUnknownMessageType
// when buf does not start with its prefix, letting Decode fall through to
// the next candidate.
type decoder func(buf []byte) (Message, int, error)

// decoders lists every frame decoder, most specific prefix first. Several
// spectrum analyzer and signal generator frames share a leading "#C2-"/"#C3-"
// byte sequence, so ordering here matters: a decoder for a longer, more
// specific prefix must run before one for a shorter prefix it could also
// match as a false positive (none currently collide this way, but the order
// is kept deliberate rather than incidental).
var decoders = []decoder{
	decodeConfig,
	decodeSASetupInfo,
	decodeSGSetupInfo,
	decodeConfigAmpSweepExp,
	decodeConfigAmpSweep,
	decodeConfigFreqSweepExp,
	decodeConfigFreqSweep,
	decodeConfigCwExp,
	decodeConfigCw,
	decodeTemperature,
	decodeDspMode,
	decodeInputStage,
	decodeTrackingStatus,
	decodeSweepStandard,
	decodeSweepExt,
	decodeSweepLarge,
	decodeScreenData,
	decodeSerialNumber,
}

// Decode attempts every known frame decoder against buf in order and returns
// the first non-UnknownMessageType result. Callers (the reader loop) treat
// the four ParseErrorKind values distinctly: Incomplete means wait for more
// bytes, Truncated means jump to the given remainder, Invalid or
// UnknownMessageType mean advance one byte and resynchronize.
func Decode(buf []byte) (Message, int, error) {
	for _, d := range decoders {
		msg, n, err := d(buf)
		if pe, ok := err.(*ParseError); ok && pe.Kind == ParseUnknownMessageType {
			continue
		}
		return msg, n, err
	}
	return nil, 0, errUnknownMessageType
}
