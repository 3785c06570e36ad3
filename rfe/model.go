package rfe

import "fmt"

// SAModel identifies the spectrum analyzer hardware variant reported in a
// SetupInfo frame's main/expansion model byte.
type SAModel int

const (
	SAModel433M    SAModel = 0
	SAModel868M    SAModel = 1
	SAModel915M    SAModel = 2
	SAModelWSUB1G  SAModel = 3
	SAModel24G     SAModel = 4
	SAModelWSUB3G  SAModel = 5
	SAModel6G      SAModel = 6
	SAModelWSUB1GPlus SAModel = 10
	SAModel24GPlus SAModel = 11
	SAModel4GPlus  SAModel = 12
	SAModel6GPlus  SAModel = 13
	SAModelUnknown SAModel = -1
)

func (m SAModel) String() string {
	switch m {
	case SAModel433M:
		return "433M"
	case SAModel868M:
		return "868M"
	case SAModel915M:
		return "915M"
	case SAModelWSUB1G:
		return "WSUB1G"
	case SAModel24G:
		return "2.4G"
	case SAModelWSUB3G:
		return "WSUB3G"
	case SAModel6G:
		return "6G"
	case SAModelWSUB1GPlus:
		return "WSUB1G+"
	case SAModel24GPlus:
		return "2.4G+"
	case SAModel4GPlus:
		return "4G+"
	case SAModel6GPlus:
		return "6G+"
	case SAModelUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("SAModel(%d)", int(m))
}

// IsPlusModel reports whether this model supports the extended/large
// sweep-point commands and the 112-point minimum sweep.
func (m SAModel) IsPlusModel() bool {
	switch m {
	case SAModelWSUB1GPlus, SAModel24GPlus, SAModel4GPlus, SAModel6GPlus:
		return true
	}
	return false
}

// MinFreq and MaxFreq report the model's supported frequency range. Models
// not recognized here return a zero range; callers should treat that as
// "unknown bounds, do not validate".
func (m SAModel) MinFreq() Frequency {
	switch m {
	case SAModel433M:
		return FromMHz(430)
	case SAModel868M:
		return FromMHz(860)
	case SAModel915M:
		return FromMHz(910)
	case SAModelWSUB1G, SAModelWSUB1GPlus:
		return FromMHz(50)
	case SAModel24G, SAModel24GPlus:
		return FromMHz(2400)
	case SAModelWSUB3G:
		return FromMHz(15)
	case SAModel6G, SAModel6GPlus:
		return FromMHz(4850)
	case SAModel4GPlus:
		return FromMHz(4850)
	}
	return 0
}

func (m SAModel) MaxFreq() Frequency {
	switch m {
	case SAModel433M:
		return FromMHz(440)
	case SAModel868M:
		return FromMHz(870)
	case SAModel915M:
		return FromMHz(920)
	case SAModelWSUB1G, SAModelWSUB1GPlus:
		return FromMHz(960)
	case SAModel24G, SAModel24GPlus:
		return FromMHz(2700)
	case SAModelWSUB3G:
		return FromMHz(2700)
	case SAModel6G, SAModel6GPlus:
		return FromMHz(6100)
	case SAModel4GPlus:
		return FromMHz(4000)
	}
	return 0
}

// MinSpan and MaxSpan report the model's supported sweep span range.
func (m SAModel) MinSpan() Frequency { return FromKHz(100) }
func (m SAModel) MaxSpan() Frequency { return m.MaxFreq() - m.MinFreq() }

func parseSAModel(b byte) SAModel {
	switch b {
	case 0, 1, 2, 3, 4, 5, 6, 10, 11, 12, 13:
		return SAModel(b)
	case 255:
		return SAModelUnknown
	}
	return SAModelUnknown
}

// SGModel identifies the signal generator hardware variant.
type SGModel int

const (
	SGModelRFE6Gen           SGModel = 60
	SGModelRFE6GenExpansion  SGModel = 61
	SGModelUnknown           SGModel = -1
)

func (m SGModel) String() string {
	switch m {
	case SGModelRFE6Gen:
		return "RFE6GEN"
	case SGModelRFE6GenExpansion:
		return "RFE6GEN-Expansion"
	case SGModelUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("SGModel(%d)", int(m))
}

func parseSGModel(b byte) SGModel {
	switch b {
	case 60, 61:
		return SGModel(b)
	}
	return SGModelUnknown
}

// RadioModule identifies one of the two physical RF front-ends a device may
// carry: the always-present main module, or an optional expansion module.
type RadioModule int

const (
	RadioModuleMain RadioModule = iota
	RadioModuleExpansion
)

func (r RadioModule) IsMain() bool       { return r == RadioModuleMain }
func (r RadioModule) IsExpansion() bool  { return r == RadioModuleExpansion }

func (r RadioModule) String() string {
	if r == RadioModuleExpansion {
		return "Expansion"
	}
	return "Main"
}
