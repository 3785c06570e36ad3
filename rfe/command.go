package rfe

import "fmt"

// encodeCommand wraps cmd in the device's outer command frame: '#', a
// length byte counting the '#', itself and cmd, then cmd's bytes. Mirrors the
// teacher's SendCommand, which computes writeBuf[1] as 2+len(cmd).
func encodeCommand(cmd string) ([]byte, error) {
	if len(cmd) > 253 {
		return nil, fmt.Errorf("rfe: command %q exceeds the 253 byte payload limit", cmd)
	}
	buf := make([]byte, 2+len(cmd))
	buf[0] = '#'
	buf[1] = byte(2 + len(cmd))
	copy(buf[2:], cmd)
	return buf, nil
}

func encodeSetConfig(startKHz, stopKHz, maxAmpDBm, minAmpDBm int) ([]byte, error) {
	return encodeCommand(fmt.Sprintf("C2-F:%07d,%07d,%04d,%04d", startKHz, stopKHz, maxAmpDBm, minAmpDBm))
}

func encodeSetSweepPointsStandard(points int) ([]byte, error) {
	return encodeCommand("CJ" + string([]byte{byte((points - 16) / 16)}))
}

func encodeSetSweepPointsExt(points int) ([]byte, error) {
	return encodeCommand("Cj" + string([]byte{byte((points & 0xff00) >> 8), byte(points & 0xff)}))
}

func encodeSetSweepPointsLarge(points int) ([]byte, error) {
	return encodeCommand("Ck" + string([]byte{byte((points & 0xff00) >> 8), byte(points & 0xff)}))
}

func encodeSwitchModuleMain() ([]byte, error) { return encodeCommand("CM\x00") }
func encodeSwitchModuleExp() ([]byte, error)  { return encodeCommand("CM\x01") }

func encodeSetDsp(mode DspMode) ([]byte, error) {
	return encodeCommand("Cp" + string([]byte{byte(mode)}))
}

func encodeSetInputStage(stage InputStage) ([]byte, error) {
	return encodeCommand("a" + string([]byte{byte(stage)}))
}

func encodeSetCalcMode(mode CalcMode) ([]byte, error) {
	return encodeCommand("C+" + string([]byte{byte(mode)}))
}

func encodeSetOffsetDB(offsetDB int) ([]byte, error) {
	return encodeCommand("CO" + string([]byte{byte(int8(offsetDB))}))
}

func encodeStartWifiAnalyzer(band WifiBand) ([]byte, error) {
	return encodeCommand("C2-W:" + string([]byte{byte(band)}))
}

func encodeStopWifiAnalyzer() ([]byte, error) { return encodeCommand("C2-W:\x00") }

func encodeStartTracking(startKHz, stepHz int) ([]byte, error) {
	return encodeCommand(fmt.Sprintf("C2-T:%07d,%04d", startKHz, stepHz))
}

func encodeTrackingStep(step uint16) ([]byte, error) {
	return encodeCommand("k" + string([]byte{byte(step >> 8), byte(step & 0xff)}))
}

func encodeRequestSerialNumber() ([]byte, error) { return encodeCommand("Cn") }
func encodeRequestConfig() ([]byte, error)       { return encodeCommand("C0") }
func encodeHold() ([]byte, error)                { return encodeCommand("CH") }

func encodeSetLcdEnabled(enabled bool) ([]byte, error) {
	if enabled {
		return encodeCommand("L1")
	}
	return encodeCommand("L0")
}

// baudRateCode maps a baud rate to the device's single-digit code
// (c0 = 500000, c1..c8 = 1200..115200).
func baudRateCode(baud int) (byte, error) {
	switch baud {
	case 500000:
		return '0', nil
	case 1200:
		return '1', nil
	case 2400:
		return '2', nil
	case 4800:
		return '3', nil
	case 9600:
		return '4', nil
	case 19200:
		return '5', nil
	case 38400:
		return '6', nil
	case 57600:
		return '7', nil
	case 115200:
		return '8', nil
	}
	return 0, fmt.Errorf("rfe: unsupported baud rate %d", baud)
}

func encodeSetBaudRate(baud int) ([]byte, error) {
	code, err := baudRateCode(baud)
	if err != nil {
		return nil, err
	}
	return encodeCommand("c" + string([]byte{code}))
}

func encodeSetScreenDumpEnabled(enabled bool) ([]byte, error) {
	if enabled {
		return encodeCommand("D1")
	}
	return encodeCommand("D0")
}

// Signal generator command encoders. ConfigCw/ConfigFreqSweep/ConfigAmpSweep
// document the corresponding report frame bodies; the command frames that
// provoke them carry the same comma-separated fields.

func encodeSetCw(freqKHz int, atten Attenuation, power PowerLevel, rfPower RfPower) ([]byte, error) {
	return encodeSetCwWith("C3-F:", freqKHz, atten, power, rfPower)
}

func encodeSetCwExp(freqKHz int, atten Attenuation, power PowerLevel, rfPower RfPower) ([]byte, error) {
	return encodeSetCwWith("C5-F:", freqKHz, atten, power, rfPower)
}

func encodeSetCwWith(prefix string, freqKHz int, atten Attenuation, power PowerLevel, rfPower RfPower) ([]byte, error) {
	return encodeCommand(fmt.Sprintf("%s%07d,%c,%c,%c", prefix, freqKHz, byte(atten), byte(power), byte(rfPower)))
}

func encodeSetFreqSweep(startKHz, stepHz, steps int, atten Attenuation, power PowerLevel, rfPower RfPower, delayMs int) ([]byte, error) {
	return encodeSetFreqSweepWith("C3-P:", startKHz, stepHz, steps, atten, power, rfPower, delayMs)
}

func encodeSetFreqSweepExp(startKHz, stepHz, steps int, atten Attenuation, power PowerLevel, rfPower RfPower, delayMs int) ([]byte, error) {
	return encodeSetFreqSweepWith("C5-P:", startKHz, stepHz, steps, atten, power, rfPower, delayMs)
}

func encodeSetFreqSweepWith(prefix string, startKHz, stepHz, steps int, atten Attenuation, power PowerLevel, rfPower RfPower, delayMs int) ([]byte, error) {
	return encodeCommand(fmt.Sprintf("%s%07d,%04d,%04d,%c,%c,%c,%05d", prefix, startKHz, stepHz, steps, byte(atten), byte(power), byte(rfPower), delayMs))
}

func encodeSetAmpSweep(cwFreqKHz, steps int, startAtten Attenuation, startPower PowerLevel, stopAtten Attenuation, stopPower PowerLevel, rfPower RfPower, delayMs int) ([]byte, error) {
	return encodeSetAmpSweepWith("C3-A:", cwFreqKHz, steps, startAtten, startPower, stopAtten, stopPower, rfPower, delayMs)
}

func encodeSetAmpSweepExp(cwFreqKHz, steps int, startAtten Attenuation, startPower PowerLevel, stopAtten Attenuation, stopPower PowerLevel, rfPower RfPower, delayMs int) ([]byte, error) {
	return encodeSetAmpSweepWith("C5-A:", cwFreqKHz, steps, startAtten, startPower, stopAtten, stopPower, rfPower, delayMs)
}

func encodeSetAmpSweepWith(prefix string, cwFreqKHz, steps int, startAtten Attenuation, startPower PowerLevel, stopAtten Attenuation, stopPower PowerLevel, rfPower RfPower, delayMs int) ([]byte, error) {
	return encodeCommand(fmt.Sprintf("%s%07d,%04d,%c,%c,%c,%c,%c,%05d", prefix, cwFreqKHz, steps, byte(startAtten), byte(startPower), byte(stopAtten), byte(stopPower), byte(rfPower), delayMs))
}

func encodeSetGeneratorPower(on bool) ([]byte, error) {
	if on {
		return encodeCommand("CP1")
	}
	return encodeCommand("CP0")
}
