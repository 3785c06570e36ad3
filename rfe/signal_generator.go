package rfe

import (
	"github.com/charmbracelet/log"
)

// SignalGenerator is a connection to an RF Explorer signal generator device.
type SignalGenerator struct {
	conn      *connection
	cache     *sgMessageContainer
	mainModel SGModel
	expModel  *SGModel
	firmware  string
	logger    *log.Logger
}

// SerialNumber returns the device's serial number.
func (s *SignalGenerator) SerialNumber() (SerialNumber, error) {
	if sn, ok := s.cache.serialNumber.get(); ok {
		return sn, nil
	}
	frame, err := encodeRequestSerialNumber()
	if err != nil {
		return SerialNumber{}, errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return SerialNumber{}, err
	}
	sn, ok := s.cache.serialNumber.waitFor(func(_ SerialNumber, ok bool) bool { return ok }, commandResponseTimeout)
	if !ok {
		return SerialNumber{}, errTimedOut(commandResponseTimeout)
	}
	return sn, nil
}

// Temperature returns the device's most recently reported temperature.
func (s *SignalGenerator) Temperature() (Temperature, bool) {
	return s.cache.temperature.get()
}

// ConfigCw returns the device's most recently reported CW configuration.
func (s *SignalGenerator) ConfigCw() (ConfigCw, bool) { return s.cache.configCw.get() }

// ConfigFreqSweep returns the most recently reported frequency sweep configuration.
func (s *SignalGenerator) ConfigFreqSweep() (ConfigFreqSweep, bool) {
	return s.cache.configFreqSweep.get()
}

// ConfigAmpSweep returns the most recently reported amplitude sweep configuration.
func (s *SignalGenerator) ConfigAmpSweep() (ConfigAmpSweep, bool) {
	return s.cache.configAmpSweep.get()
}

// SetCw puts the device into continuous-wave output at the given frequency,
// attenuation, and power level, waiting for the device to confirm it.
func (s *SignalGenerator) SetCw(freq Frequency, atten Attenuation, power PowerLevel, rfPower RfPower) error {
	if err := s.validateFreq(freq); err != nil {
		return err
	}
	frame, err := encodeSetCw(int(freq.KHz()), atten, power, rfPower)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return err
	}
	_, ok := s.cache.configCw.waitFor(func(c ConfigCw, ok bool) bool {
		return ok && c.FreqKHz == int(freq.KHz()) && c.Attenuation == atten && c.PowerLevel == power && c.RfPower == rfPower
	}, commandResponseTimeout)
	if !ok {
		return errTimedOut(commandResponseTimeout)
	}
	return nil
}

// SetFreqSweep configures a frequency sweep on the main radio module.
func (s *SignalGenerator) SetFreqSweep(start Frequency, step Frequency, steps int, atten Attenuation, power PowerLevel, rfPower RfPower, delayMs int) error {
	if err := s.validateFreq(start); err != nil {
		return err
	}
	if steps <= 0 {
		return errInvalidInput("sweep step count must be positive, got %d", steps)
	}
	frame, err := encodeSetFreqSweep(int(start.KHz()), int(step.Hz()), steps, atten, power, rfPower, delayMs)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetAmpSweep configures an amplitude sweep at a fixed CW frequency on the main radio module.
func (s *SignalGenerator) SetAmpSweep(cwFreq Frequency, steps int, startAtten Attenuation, startPower PowerLevel, stopAtten Attenuation, stopPower PowerLevel, rfPower RfPower, delayMs int) error {
	if err := s.validateFreq(cwFreq); err != nil {
		return err
	}
	frame, err := encodeSetAmpSweep(int(cwFreq.KHz()), steps, startAtten, startPower, stopAtten, stopPower, rfPower, delayMs)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetCwExp is SetCw for the expansion radio module.
func (s *SignalGenerator) SetCwExp(freq Frequency, atten Attenuation, power PowerLevel, rfPower RfPower) error {
	if s.expModel == nil {
		return errInvalidOperation("this device does not have an expansion radio module")
	}
	frame, err := encodeSetCwExp(int(freq.KHz()), atten, power, rfPower)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetFreqSweepExp is SetFreqSweep for the expansion radio module.
func (s *SignalGenerator) SetFreqSweepExp(start Frequency, step Frequency, steps int, atten Attenuation, power PowerLevel, rfPower RfPower, delayMs int) error {
	if s.expModel == nil {
		return errInvalidOperation("this device does not have an expansion radio module")
	}
	frame, err := encodeSetFreqSweepExp(int(start.KHz()), int(step.Hz()), steps, atten, power, rfPower, delayMs)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetAmpSweepExp is SetAmpSweep for the expansion radio module.
func (s *SignalGenerator) SetAmpSweepExp(cwFreq Frequency, steps int, startAtten Attenuation, startPower PowerLevel, stopAtten Attenuation, stopPower PowerLevel, rfPower RfPower, delayMs int) error {
	if s.expModel == nil {
		return errInvalidOperation("this device does not have an expansion radio module")
	}
	frame, err := encodeSetAmpSweepExp(int(cwFreq.KHz()), steps, startAtten, startPower, stopAtten, stopPower, rfPower, delayMs)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetPower turns the device's RF output power on or off.
func (s *SignalGenerator) SetPower(on bool) error {
	frame, err := encodeSetGeneratorPower(on)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// Close releases the underlying serial port and stops the background reader.
func (s *SignalGenerator) Close() error { return s.conn.close() }

func (s *SignalGenerator) validateFreq(freq Frequency) error {
	if freq <= 0 {
		return errInvalidInput("frequency must be positive, got %s", freq)
	}
	return nil
}
