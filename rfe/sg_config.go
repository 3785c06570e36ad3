package rfe

import (
	"bytes"
	"strings"
)

// Signal generator config frames. Only ConfigAmpSweep's wire format has a
// worked fixture
// (#C3-A:<cw_freq_khz:07>,<sweep_power_steps:04>,<start_atten:01>,
// <start_power:01>,<stop_atten:01>,<stop_power:01>,<rf_power:01>,
// <sweep_delay_ms:05>). ConfigCw and ConfigFreqSweep follow the same field
// style, extrapolated from the "#C3-" signal generator prefix family and
// the main Config frame's comma-separated fixed-width convention.
// Expansion-module ("+") forms share the same body shape behind a distinct
// prefix letter ("#C5-") rather than "#C4-", which the spectrum analyzer
// side already uses for its sniffer config.
var (
	configCwPrefix          = []byte("#C3-F:")
	configCwExpPrefix       = []byte("#C5-F:")
	configFreqSweepPrefix    = []byte("#C3-P:")
	configFreqSweepExpPrefix = []byte("#C5-P:")
	configAmpSweepPrefix     = []byte("#C3-A:")
	configAmpSweepExpPrefix  = []byte("#C5-A:")
)

// ConfigCw is the signal generator's CW (continuous-wave) single-frequency
// output configuration.
type ConfigCw struct {
	FreqKHz     int
	Attenuation Attenuation
	PowerLevel  PowerLevel
	RfPower     RfPower
	IsExpansion bool
}

func (ConfigCw) messageKind() string { return "ConfigCw" }

// ConfigFreqSweep is the signal generator's frequency-sweep configuration.
type ConfigFreqSweep struct {
	StartFreqKHz int
	FreqStepHz   int
	SweepSteps   int
	Attenuation  Attenuation
	PowerLevel   PowerLevel
	RfPower      RfPower
	SweepDelayMs int
	IsExpansion  bool
}

func (ConfigFreqSweep) messageKind() string { return "ConfigFreqSweep" }

// ConfigAmpSweep is the signal generator's amplitude-sweep configuration.
type ConfigAmpSweep struct {
	CwFreqKHz        int
	SweepPowerSteps  int
	StartAttenuation Attenuation
	StartPowerLevel  PowerLevel
	StopAttenuation  Attenuation
	StopPowerLevel   PowerLevel
	RfPower          RfPower
	SweepDelayMs     int
	IsExpansion      bool
}

func (ConfigAmpSweep) messageKind() string { return "ConfigAmpSweep" }

func decodeConfigCw(buf []byte) (Message, int, error) {
	return decodeConfigCwWith(buf, configCwPrefix, false)
}

func decodeConfigCwExp(buf []byte) (Message, int, error) {
	return decodeConfigCwWith(buf, configCwExpPrefix, true)
}

func decodeConfigCwWith(buf, prefix []byte, isExp bool) (Message, int, error) {
	if !bytes.HasPrefix(buf, prefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(prefix):]
	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	fields := strings.Split(string(rest[:eol]), ",")
	if len(fields) != 4 {
		return nil, 0, errInvalid
	}
	freq, ok1 := parseZeroPaddedInt(fields[0])
	if !ok1 || len(fields[1]) != 1 || len(fields[2]) != 1 || len(fields[3]) != 1 {
		return nil, 0, errInvalid
	}
	total := len(prefix) + eol + eolWidth
	return ConfigCw{
		FreqKHz:     freq,
		Attenuation: Attenuation(fields[1][0]),
		PowerLevel:  PowerLevel(fields[2][0]),
		RfPower:     RfPower(fields[3][0]),
		IsExpansion: isExp,
	}, total, nil
}

func decodeConfigFreqSweep(buf []byte) (Message, int, error) {
	return decodeConfigFreqSweepWith(buf, configFreqSweepPrefix, false)
}

func decodeConfigFreqSweepExp(buf []byte) (Message, int, error) {
	return decodeConfigFreqSweepWith(buf, configFreqSweepExpPrefix, true)
}

func decodeConfigFreqSweepWith(buf, prefix []byte, isExp bool) (Message, int, error) {
	if !bytes.HasPrefix(buf, prefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(prefix):]
	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	fields := strings.Split(string(rest[:eol]), ",")
	if len(fields) != 7 {
		return nil, 0, errInvalid
	}
	start, ok1 := parseZeroPaddedInt(fields[0])
	step, ok2 := parseZeroPaddedInt(fields[1])
	steps, ok3 := parseZeroPaddedInt(fields[2])
	delay, ok4 := parseZeroPaddedInt(fields[6])
	if !ok1 || !ok2 || !ok3 || !ok4 || len(fields[3]) != 1 || len(fields[4]) != 1 || len(fields[5]) != 1 {
		return nil, 0, errInvalid
	}
	total := len(prefix) + eol + eolWidth
	return ConfigFreqSweep{
		StartFreqKHz: start,
		FreqStepHz:   step,
		SweepSteps:   steps,
		Attenuation:  Attenuation(fields[3][0]),
		PowerLevel:   PowerLevel(fields[4][0]),
		RfPower:      RfPower(fields[5][0]),
		SweepDelayMs: delay,
		IsExpansion:  isExp,
	}, total, nil
}

func decodeConfigAmpSweep(buf []byte) (Message, int, error) {
	return decodeConfigAmpSweepWith(buf, configAmpSweepPrefix, false)
}

func decodeConfigAmpSweepExp(buf []byte) (Message, int, error) {
	return decodeConfigAmpSweepWith(buf, configAmpSweepExpPrefix, true)
}

func decodeConfigAmpSweepWith(buf, prefix []byte, isExp bool) (Message, int, error) {
	if !bytes.HasPrefix(buf, prefix) {
		return nil, 0, errUnknownMessageType
	}
	rest := buf[len(prefix):]
	eol, eolWidth, found := findLineEnding(rest)
	if !found {
		return nil, 0, errIncomplete
	}
	fields := strings.Split(string(rest[:eol]), ",")
	if len(fields) != 8 {
		return nil, 0, errInvalid
	}
	cwFreq, ok1 := parseZeroPaddedInt(fields[0])
	steps, ok2 := parseZeroPaddedInt(fields[1])
	delay, ok3 := parseZeroPaddedInt(fields[7])
	if !ok1 || !ok2 || !ok3 ||
		len(fields[2]) != 1 || len(fields[3]) != 1 || len(fields[4]) != 1 || len(fields[5]) != 1 || len(fields[6]) != 1 {
		return nil, 0, errInvalid
	}
	total := len(prefix) + eol + eolWidth
	return ConfigAmpSweep{
		CwFreqKHz:        cwFreq,
		SweepPowerSteps:  steps,
		StartAttenuation: Attenuation(fields[2][0]),
		StartPowerLevel:  PowerLevel(fields[3][0]),
		StopAttenuation:  Attenuation(fields[4][0]),
		StopPowerLevel:   PowerLevel(fields[5][0]),
		RfPower:          RfPower(fields[6][0]),
		SweepDelayMs:     delay,
		IsExpansion:      isExp,
	}, total, nil
}
