package rfe

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// commandResponseTimeout bounds how long a send-and-wait operation
// (setConfig, setDspMode, ...) waits for the device to acknowledge a
// command before reporting OpTimedOut.
const commandResponseTimeout = 2 * time.Second

// connection is the shared transport plumbing behind both SpectrumAnalyzer
// and SignalGenerator: one serial Port, one background reader, and a
// write-mutex serializing outbound commands (the reader and writer run
// concurrently on the same port; go.bug.st/serial's Port is not documented
// as safe for concurrent Read+Write from multiple goroutines on all
// platforms, so writes are funneled through writeMu).
type connection struct {
	port     Port
	portName string
	reader   *reader
	writeMu  sync.Mutex
	logger   *log.Logger
}

func (c *connection) sendRaw(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	n, err := c.port.Write(frame)
	if err != nil {
		return errIO(err)
	}
	if n != len(frame) {
		return errIO(errShortWrite(len(frame), n))
	}
	return nil
}

func (c *connection) close() error {
	c.reader.stop()
	return nil
}

type shortWriteError struct {
	want, got int
}

func errShortWrite(want, got int) error { return &shortWriteError{want, got} }

func (e *shortWriteError) Error() string {
	return fmt.Sprintf("rfe: short write: wrote %d of %d bytes", e.got, e.want)
}
