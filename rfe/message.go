package rfe

import "time"

// Message is the sum type produced by the frame codec. Every concrete
// message type below implements it; type-switch on the concrete type to
// handle a particular kind, the way the cache (cache.go) does.
type Message interface {
	messageKind() string
}

// Config is the spectrum analyzer's current configuration, as reported by
// an unsolicited #C2-F: frame or in response to RequestConfig.
type Config struct {
	Start                       Frequency
	Stop                        Frequency
	MaxAmpDBm                   int
	MinAmpDBm                   int
	SweepPoints                 int
	IsExpansionRadioModuleActive bool
	Mode                        Mode
	MinFreq                     Frequency
	MaxFreq                     Frequency
	MaxSpan                     Frequency
	RBWKHz                      int
	AmpOffsetDB                 int
	CalcMode                    CalcMode
}

func (Config) messageKind() string { return "Config" }

// ContainsStartStopAmpRange reports whether this Config already reflects
// the given start/stop/amplitude values, used by the coordination layer to
// short-circuit a send-and-wait when the device is already in the desired
// state.
func (c Config) ContainsStartStopAmpRange(start, stop Frequency, minAmpDBm, maxAmpDBm int) bool {
	return c.Start == start && c.Stop == stop && c.MinAmpDBm == minAmpDBm && c.MaxAmpDBm == maxAmpDBm
}

// SASetupInfo is the spectrum analyzer's hardware identification, reported
// once per connection by a #C2-M: frame.
type SASetupInfo struct {
	MainRadioModel      SAModel
	ExpansionRadioModel *SAModel // nil iff the device reported the "absent" sentinel (255)
	FirmwareVersion     string
}

func (SASetupInfo) messageKind() string { return "SetupInfo" }

// SGSetupInfo is the signal generator's hardware identification, reported
// once per connection by a #C3-M: frame.
type SGSetupInfo struct {
	MainRadioModel      SGModel
	ExpansionRadioModel *SGModel
	FirmwareVersion     string
}

func (SGSetupInfo) messageKind() string { return "SetupInfo" }

// SerialNumber is the device's 16-character ASCII identifier.
type SerialNumber struct {
	Value string
}

func (SerialNumber) messageKind() string { return "SerialNumber" }

// Temperature is a signed integer dBm-adjacent device reading.
type Temperature struct {
	ValueDBm int
}

func (Temperature) messageKind() string { return "Temperature" }

// ScreenData is a 128x64 monochrome pixel buffer packed column-major as the
// device emits it, plus a host capture timestamp. The device provides no
// timestamp of its own; Timestamp records when the host received the frame.
type ScreenData struct {
	Pixels    [1024]byte
	Timestamp time.Time
}

func (ScreenData) messageKind() string { return "ScreenData" }

// At reports whether the pixel at (x, y) is lit.
func (s *ScreenData) At(x, y int) bool {
	return (s.Pixels[(y/8)*128+x]>>(uint(y)%8))&1 != 0
}
