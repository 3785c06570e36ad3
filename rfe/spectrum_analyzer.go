package rfe

import (
	"time"

	"github.com/charmbracelet/log"
)

const (
	minMaxAmpRangeMinDBm = -120
	minMaxAmpRangeMaxDBm = 35
	minSweepPoints       = 112
	nextSweepTimeout     = 2 * time.Second
)

// SpectrumAnalyzer is a connection to an RF Explorer spectrum analyzer
// device. All methods are safe for concurrent use.
type SpectrumAnalyzer struct {
	conn         *connection
	cache        *saMessageContainer
	mainModel    SAModel
	expModel     *SAModel
	activeModule RadioModule
	firmware     string
	logger       *log.Logger
}

// SerialNumber returns the device's serial number, requesting it from the
// device if it has not already been received.
func (s *SpectrumAnalyzer) SerialNumber() (SerialNumber, error) {
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

// Config returns the spectrum analyzer's most recently reported configuration.
func (s *SpectrumAnalyzer) Config() Config {
	cfg, _ := s.cache.config.get()
	return cfg
}

// Sweep returns the most recently measured Sweep, if any has arrived yet.
func (s *SpectrumAnalyzer) Sweep() (Sweep, bool) {
	return s.cache.sweep.get()
}

// WaitForNextSweep blocks until a Sweep distinct from the current one
// arrives, or nextSweepTimeout elapses.
func (s *SpectrumAnalyzer) WaitForNextSweep() (Sweep, error) {
	return s.WaitForNextSweepWithTimeout(nextSweepTimeout)
}

// WaitForNextSweepWithTimeout blocks until a new Sweep arrives or timeout elapses.
func (s *SpectrumAnalyzer) WaitForNextSweepWithTimeout(timeout time.Duration) (Sweep, error) {
	previous, hadPrevious := s.cache.sweep.get()
	sweep, ok := s.cache.sweep.waitFor(func(cur Sweep, curOK bool) bool {
		if !curOK {
			return false
		}
		if !hadPrevious {
			return true
		}
		return cur.Timestamp != previous.Timestamp
	}, timeout)
	if !ok {
		return Sweep{}, errTimedOut(timeout)
	}
	return sweep, nil
}

// ScreenData returns the most recently captured ScreenData, if any.
func (s *SpectrumAnalyzer) ScreenData() (ScreenData, bool) {
	return s.cache.screenData.get()
}

// WaitForNextScreenData blocks until a new ScreenData frame is captured.
func (s *SpectrumAnalyzer) WaitForNextScreenData(timeout time.Duration) (ScreenData, error) {
	previous, hadPrevious := s.cache.screenData.get()
	sd, ok := s.cache.screenData.waitFor(func(cur ScreenData, curOK bool) bool {
		if !curOK {
			return false
		}
		if !hadPrevious {
			return true
		}
		return cur.Timestamp != previous.Timestamp
	}, timeout)
	if !ok {
		return ScreenData{}, errTimedOut(timeout)
	}
	return sd, nil
}

// DspMode returns the device's most recently reported DSP mode, if any.
func (s *SpectrumAnalyzer) DspMode() (DspMode, bool) { return s.cache.dspMode.get() }

// TrackingStatus returns the device's most recently reported tracking status.
func (s *SpectrumAnalyzer) TrackingStatus() (TrackingStatus, bool) {
	return s.cache.trackingStatus.get()
}

// InputStage returns the device's most recently reported input stage.
func (s *SpectrumAnalyzer) InputStage() (InputStage, bool) { return s.cache.inputStage.get() }

// MainRadioModule reports the main radio module.
func (s *SpectrumAnalyzer) MainRadioModule() RadioModule { return RadioModuleMain }

// ExpansionRadioModule reports the expansion radio module, if the device has one.
func (s *SpectrumAnalyzer) ExpansionRadioModule() *RadioModule {
	if s.expModel == nil {
		return nil
	}
	m := RadioModuleExpansion
	return &m
}

// ActiveRadioModule reports which radio module is currently selected.
func (s *SpectrumAnalyzer) ActiveRadioModule() RadioModule {
	cfg, ok := s.cache.config.get()
	if ok && cfg.IsExpansionRadioModuleActive {
		return RadioModuleExpansion
	}
	return RadioModuleMain
}

// activeModel returns the SAModel of the currently active radio module.
func (s *SpectrumAnalyzer) activeModel() SAModel {
	if s.ActiveRadioModule().IsExpansion() && s.expModel != nil {
		return *s.expModel
	}
	return s.mainModel
}

// ActivateMainRadioModule switches the device to its main radio module.
func (s *SpectrumAnalyzer) ActivateMainRadioModule() error {
	if s.ActiveRadioModule().IsMain() {
		return errInvalidOperation("main radio module is already active")
	}
	frame, err := encodeSwitchModuleMain()
	if err != nil {
		return errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return err
	}
	s.cache.config.waitFor(func(c Config, ok bool) bool { return ok && !c.IsExpansionRadioModuleActive }, commandResponseTimeout)
	if s.ActiveRadioModule().IsMain() {
		return nil
	}
	return errTimedOut(commandResponseTimeout)
}

// ActivateExpansionRadioModule switches the device to its expansion radio module.
func (s *SpectrumAnalyzer) ActivateExpansionRadioModule() error {
	if s.expModel == nil {
		return errInvalidOperation("this device does not have an expansion radio module")
	}
	if s.ActiveRadioModule().IsExpansion() {
		return errInvalidOperation("expansion radio module is already active")
	}
	frame, err := encodeSwitchModuleExp()
	if err != nil {
		return errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return err
	}
	s.cache.config.waitFor(func(c Config, ok bool) bool { return ok && c.IsExpansionRadioModuleActive }, commandResponseTimeout)
	if s.ActiveRadioModule().IsExpansion() {
		return nil
	}
	return errTimedOut(commandResponseTimeout)
}

// SetStartStop sets the start and stop frequency of measured sweeps,
// keeping the current amplitude range.
func (s *SpectrumAnalyzer) SetStartStop(start, stop Frequency) error {
	cfg := s.Config()
	return s.setConfig(start, stop, cfg.MinAmpDBm, cfg.MaxAmpDBm)
}

// SetStartStopSweepPoints sets the start frequency, stop frequency, and
// sweep point count together.
func (s *SpectrumAnalyzer) SetStartStopSweepPoints(start, stop Frequency, sweepPoints int) error {
	cfg := s.Config()
	if err := s.SetSweepPoints(sweepPoints); err != nil {
		return err
	}
	return s.setConfig(start, stop, cfg.MinAmpDBm, cfg.MaxAmpDBm)
}

// SetCenterSpan sets the center frequency and span of measured sweeps.
func (s *SpectrumAnalyzer) SetCenterSpan(center, span Frequency) error {
	return s.SetStartStop(center-span/2, center+span/2)
}

// SetCenterSpanSweepPoints sets center, span, and sweep point count together.
func (s *SpectrumAnalyzer) SetCenterSpanSweepPoints(center, span Frequency, sweepPoints int) error {
	return s.SetStartStopSweepPoints(center-span/2, center+span/2, sweepPoints)
}

// SetMinMaxAmps sets the minimum and maximum amplitudes displayed on the device's screen.
func (s *SpectrumAnalyzer) SetMinMaxAmps(minAmpDBm, maxAmpDBm int) error {
	cfg := s.Config()
	return s.setConfig(cfg.Start, cfg.Stop, minAmpDBm, maxAmpDBm)
}

func (s *SpectrumAnalyzer) setConfig(start, stop Frequency, minAmpDBm, maxAmpDBm int) error {
	if err := s.validateStartStop(start, stop); err != nil {
		return err
	}
	if err := s.validateMinMaxAmps(minAmpDBm, maxAmpDBm); err != nil {
		return err
	}

	if s.Config().ContainsStartStopAmpRange(start, stop, minAmpDBm, maxAmpDBm) {
		return nil
	}

	frame, err := encodeSetConfig(int(start.KHz()), int(stop.KHz()), maxAmpDBm, minAmpDBm)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return err
	}

	_, ok := s.cache.config.waitFor(func(c Config, ok bool) bool {
		return ok && c.ContainsStartStopAmpRange(start, stop, minAmpDBm, maxAmpDBm)
	}, commandResponseTimeout)
	if !ok {
		return errTimedOut(commandResponseTimeout)
	}
	return nil
}

// SetSweepCallback registers a callback invoked on every Sweep received.
func (s *SpectrumAnalyzer) SetSweepCallback(cb func(Sweep)) {
	s.cache.sweep.setCallback(cb)
}

// SetConfigCallback registers a callback invoked on every Config received.
func (s *SpectrumAnalyzer) SetConfigCallback(cb func(Config)) {
	s.cache.config.setCallback(cb)
}

// SetSweepPoints sets the number of amplitude points in each measured sweep.
// Only 'Plus' models support this.
func (s *SpectrumAnalyzer) SetSweepPoints(sweepPoints int) error {
	if !s.activeModel().IsPlusModel() {
		return errInvalidOperation("only RF Explorer 'Plus' models support setting the number of sweep points")
	}

	var frame []byte
	var err error
	if sweepPoints <= 4096 {
		frame, err = encodeSetSweepPointsExt(sweepPoints)
	} else {
		frame, err = encodeSetSweepPointsLarge(sweepPoints)
	}
	if err != nil {
		return errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return err
	}

	expected := minSweepPoints
	if sweepPoints >= minSweepPoints {
		expected = (sweepPoints / 16) * 16
	}

	if cfg, ok := s.cache.config.get(); ok && cfg.SweepPoints == expected {
		return nil
	}

	_, ok := s.cache.config.waitFor(func(c Config, ok bool) bool { return ok && c.SweepPoints == expected }, commandResponseTimeout)
	if !ok {
		return errTimedOut(commandResponseTimeout)
	}
	return nil
}

// SetCalcMode sets the onboard calculator mode.
func (s *SpectrumAnalyzer) SetCalcMode(mode CalcMode) error {
	frame, err := encodeSetCalcMode(mode)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetInputStage sets the onboard input stage mode (WSUB1G+/IoT models only).
func (s *SpectrumAnalyzer) SetInputStage(stage InputStage) error {
	frame, err := encodeSetInputStage(stage)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetOffsetDB adds or subtracts an offset to every amplitude in each sweep.
func (s *SpectrumAnalyzer) SetOffsetDB(offsetDB int) error {
	frame, err := encodeSetOffsetDB(offsetDB)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetDspMode sets the onboard DSP mode, waiting for the device to confirm it.
func (s *SpectrumAnalyzer) SetDspMode(mode DspMode) error {
	if cur, ok := s.cache.dspMode.get(); ok && cur == mode {
		return nil
	}
	frame, err := encodeSetDsp(mode)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return err
	}
	_, ok := s.cache.dspMode.waitFor(func(cur DspMode, ok bool) bool { return ok && cur == mode }, commandResponseTimeout)
	if !ok {
		return errTimedOut(commandResponseTimeout)
	}
	return nil
}

// StartWifiAnalyzer switches the device into its Wi-Fi analyzer mode.
func (s *SpectrumAnalyzer) StartWifiAnalyzer(band WifiBand) error {
	frame, err := encodeStartWifiAnalyzer(band)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// StopWifiAnalyzer leaves Wi-Fi analyzer mode.
func (s *SpectrumAnalyzer) StopWifiAnalyzer() error {
	frame, err := encodeStopWifiAnalyzer()
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// RequestTracking puts the device into tracking generator mode and waits for
// a TrackingStatus acknowledgement.
func (s *SpectrumAnalyzer) RequestTracking(start Frequency, step Frequency) (TrackingStatus, error) {
	s.cache.trackingStatus.clear()

	frame, err := encodeStartTracking(int(start.KHz()), int(step.Hz()))
	if err != nil {
		return TrackingStatus{}, errInvalidInput("%v", err)
	}
	if err := s.conn.sendRaw(frame); err != nil {
		return TrackingStatus{}, err
	}

	status, ok := s.cache.trackingStatus.waitFor(func(_ TrackingStatus, ok bool) bool { return ok }, commandResponseTimeout)
	if !ok {
		return TrackingStatus{}, errTimedOut(commandResponseTimeout)
	}
	return status, nil
}

// TrackingStep steps the tracking generator forward and takes a measurement.
func (s *SpectrumAnalyzer) TrackingStep(step uint16) error {
	frame, err := encodeTrackingStep(step)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// RequestConfig asks the device to resend its current configuration.
func (s *SpectrumAnalyzer) RequestConfig() error {
	frame, err := encodeRequestConfig()
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// Hold stops the device from sending sweep samples until RequestConfig resumes them.
func (s *SpectrumAnalyzer) Hold() error {
	frame, err := encodeHold()
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetLcdEnabled turns the device's LCD screen on or off.
func (s *SpectrumAnalyzer) SetLcdEnabled(enabled bool) error {
	frame, err := encodeSetLcdEnabled(enabled)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// SetScreenDumpEnabled enables or disables unsolicited ScreenData frames.
func (s *SpectrumAnalyzer) SetScreenDumpEnabled(enabled bool) error {
	frame, err := encodeSetScreenDumpEnabled(enabled)
	if err != nil {
		return errInvalidInput("%v", err)
	}
	return s.conn.sendRaw(frame)
}

// Close releases the underlying serial port and stops the background reader.
func (s *SpectrumAnalyzer) Close() error { return s.conn.close() }

func (s *SpectrumAnalyzer) validateStartStop(start, stop Frequency) error {
	if start >= stop {
		return errInvalidInput("the start frequency must be less than the stop frequency")
	}

	model := s.activeModel()
	minFreq, maxFreq := model.MinFreq(), model.MaxFreq()
	if minFreq == 0 && maxFreq == 0 {
		return nil // unknown model bounds: don't validate
	}
	if start < minFreq || start > maxFreq {
		return errInvalidInput("the start frequency %s is not within the device's frequency range of %s-%s", start, minFreq, maxFreq)
	}
	if stop < minFreq || stop > maxFreq {
		return errInvalidInput("the stop frequency %s is not within the device's frequency range of %s-%s", stop, minFreq, maxFreq)
	}

	minSpan, maxSpan := model.MinSpan(), model.MaxSpan()
	span := stop - start
	if span < minSpan || span > maxSpan {
		return errInvalidInput("the span %s is not within the device's span range of %s-%s", span, minSpan, maxSpan)
	}
	return nil
}

func (s *SpectrumAnalyzer) validateMinMaxAmps(minAmpDBm, maxAmpDBm int) error {
	if minAmpDBm >= maxAmpDBm {
		return errInvalidInput("the minimum amplitude must be less than the maximum amplitude")
	}
	if minAmpDBm < minMaxAmpRangeMinDBm || minAmpDBm > minMaxAmpRangeMaxDBm {
		return errInvalidInput("the amplitude %d dBm is not within the device's amplitude range of %d-%d dBm", minAmpDBm, minMaxAmpRangeMinDBm, minMaxAmpRangeMaxDBm)
	}
	if maxAmpDBm < minMaxAmpRangeMinDBm || maxAmpDBm > minMaxAmpRangeMaxDBm {
		return errInvalidInput("the amplitude %d dBm is not within the device's amplitude range of %d-%d dBm", maxAmpDBm, minMaxAmpRangeMinDBm, minMaxAmpRangeMaxDBm)
	}
	return nil
}
