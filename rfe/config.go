package rfe

import (
	"bytes"
	"strconv"
	"strings"
)

var configPrefix = []byte("#C2-F:")
var saSetupInfoPrefix = []byte("#C2-M:")
var sgSetupInfoPrefix = []byte("#C3-M:")

// decodeConfig decodes a "#C2-F:<start>,<freqstep>,<amptop>,<ampbottom>,
// <sweeppoints>,<expactive>,<mode>,<minfreq>,<maxfreq>,<maxspan>,<rbw>,
// <ampoffset>,<calcmode>\r\n" frame.
func decodeConfig(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, configPrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(configPrefix):]

	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	line := rest[:eol]
	fields := strings.Split(string(line), ",")
	if len(fields) != 13 {
		return nil, 0, errInvalid
	}

	ints := make([]int, 13)
	for i, f := range fields {
		v, ok := parseZeroPaddedInt(f)
		if !ok {
			return nil, 0, errInvalid
		}
		ints[i] = v
	}

	cfg := Config{
		Start:                        FromKHz(float64(ints[0])),
		Stop:                         0, // set below via freq step * sweep points, see note
		MaxAmpDBm:                    ints[2],
		MinAmpDBm:                    ints[3],
		SweepPoints:                  ints[4],
		IsExpansionRadioModuleActive: ints[5] != 0,
		Mode:                         Mode(ints[6]),
		MinFreq:                      FromKHz(float64(ints[7])),
		MaxFreq:                      FromKHz(float64(ints[8])),
		MaxSpan:                      FromKHz(float64(ints[9])),
		RBWKHz:                       ints[10],
		AmpOffsetDB:                  ints[11],
		CalcMode:                     CalcMode(ints[12]),
	}
	// field 1 is the frequency step in Hz between sweep points; stop is
	// derived as start + step * (sweepPoints - 1).
	freqStepHz := ints[1]
	if cfg.SweepPoints > 0 {
		cfg.Stop = cfg.Start + FromHz(int64(freqStepHz)*int64(cfg.SweepPoints-1))
	} else {
		cfg.Stop = cfg.Start
	}

	total := len(configPrefix) + eol + eolWidth
	return cfg, total, nil
}

// decodeSASetupInfo decodes a "#C2-M:<main:03>,<exp:03>,<firmware>\r\n" frame.
func decodeSASetupInfo(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, saSetupInfoPrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(saSetupInfoPrefix):]

	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	line := rest[:eol]
	fields := strings.SplitN(string(line), ",", 3)
	if len(fields) < 2 {
		return nil, 0, errInvalid
	}

	mainByte, ok := parseZeroPaddedInt(fields[0])
	if !ok {
		return nil, 0, errInvalid
	}
	expByte, ok := parseZeroPaddedInt(fields[1])
	if !ok {
		return nil, 0, errInvalid
	}

	info := SASetupInfo{MainRadioModel: parseSAModel(byte(mainByte))}
	if expByte != 255 {
		m := parseSAModel(byte(expByte))
		info.ExpansionRadioModel = &m
	}
	if len(fields) == 3 {
		info.FirmwareVersion = fields[2]
	}

	total := len(saSetupInfoPrefix) + eol + eolWidth
	return info, total, nil
}

// decodeSGSetupInfo decodes a "#C3-M:<main:03>,<exp:03>,<firmware>\r\n" frame.
func decodeSGSetupInfo(buf []byte) (Message, int, error) {
	if !bytes.HasPrefix(buf, sgSetupInfoPrefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(sgSetupInfoPrefix):]

	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	line := rest[:eol]
	fields := strings.SplitN(string(line), ",", 3)
	if len(fields) < 2 {
		return nil, 0, errInvalid
	}

	mainByte, ok := parseZeroPaddedInt(fields[0])
	if !ok {
		return nil, 0, errInvalid
	}
	expByte, ok := parseZeroPaddedInt(fields[1])
	if !ok {
		return nil, 0, errInvalid
	}

	info := SGSetupInfo{MainRadioModel: parseSGModel(byte(mainByte))}
	if expByte != 255 {
		m := parseSGModel(byte(expByte))
		info.ExpansionRadioModel = &m
	}
	if len(fields) == 3 {
		info.FirmwareVersion = fields[2]
	}

	total := len(sgSetupInfoPrefix) + eol + eolWidth
	return info, total, nil
}

// findLineEnding reports the index of the first "\r" or "\r\n" in buf and
// how wide that line ending is (1 or 2 bytes).
func findLineEnding(buf []byte) (idx, width int, found bool) {
	i := bytes.IndexByte(buf, '\r')
	if i < 0 {
		return 0, 0, false
	}
	if i+1 < len(buf) && buf[i+1] == '\n' {
		return i, 2, true
	}
	return i, 1, true
}

// parseZeroPaddedInt parses a (possibly signed, possibly zero-padded)
// decimal field the way the device emits numeric fields: fixed width,
// leading zeros, optional leading '+' or '-'.
func parseZeroPaddedInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	s = strings.TrimLeft(s, "0")
	v := 0
	if s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		v = parsed
	}
	if neg {
		v = -v
	}
	return v, true
}
