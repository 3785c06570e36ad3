package rfe

import (
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortInfo describes one candidate serial port returned by a PortProvider.
type PortInfo struct {
	Name string
	VID  string
	PID  string
}

// Port is the minimal serial transport the reader loop and command sender
// need. go.bug.st/serial's own Port interface satisfies this. SetMode and
// SetReadTimeout are part of the interface, but neither discovery nor the
// reader loop calls them: the probing sequence in discovery.go opens the
// port afresh through the PortProvider for each baud rate it tries.
type Port interface {
	io.ReadWriteCloser
	SetMode(mode *serial.Mode) error
	SetReadTimeout(timeout time.Duration) error
}

// PortProvider enumerates and opens candidate serial ports. The production
// implementation (defaultPortProvider) wraps go.bug.st/serial; tests inject
// a fake that replays canned device traffic without real hardware.
type PortProvider interface {
	ListPorts() ([]PortInfo, error)
	Open(name string, baud int) (Port, error)
}

// siliconLabsVID is the USB vendor ID Silicon Labs' CP210x bridge chip
// reports, the UART bridge RF Explorer devices use.
const siliconLabsVID = "10C4"

// cp210xPID is the CP210x product ID.
const cp210xPID = "EA60"

type defaultPortProvider struct{}

// NewPortProvider returns the production PortProvider, backed by
// go.bug.st/serial.
func NewPortProvider() PortProvider { return defaultPortProvider{} }

func (defaultPortProvider) ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	var out []PortInfo
	for _, d := range details {
		if !looksLikeRFExplorer(d) {
			continue
		}
		out = append(out, PortInfo{Name: d.Name, VID: d.VID, PID: d.PID})
	}
	return out, nil
}

func looksLikeRFExplorer(d *enumerator.PortDetails) bool {
	if !d.IsUSB {
		return strings.Contains(strings.ToLower(d.Name), "rfexplorer")
	}
	return strings.EqualFold(d.VID, siliconLabsVID) && strings.EqualFold(d.PID, cp210xPID)
}

func (defaultPortProvider) Open(name string, baud int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}
