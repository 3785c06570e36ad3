package rfe

import (
	"os"

	"github.com/charmbracelet/log"
)

// probeBaudRates are tried in order when opening a port without a known
// baud rate: most RF Explorer firmware defaults to 500000, older units to
// 2400.
var probeBaudRates = []int{500000, 2400}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "rfe"})
}

// Connect opens the first candidate serial port that responds as an RF
// Explorer device, probing known baud rates in turn. It returns whichever
// concrete device type the port identifies itself as.
func Connect(provider PortProvider) (any, error) {
	ports, err := provider.ListPorts()
	if err != nil {
		return nil, &ConnectionError{Kind: ConnectionDeviceInfoTimeout}
	}
	for _, pi := range ports {
		if dev, err := connectByProbing(provider, pi.Name); err == nil {
			return dev, nil
		}
	}
	return nil, &ConnectionError{Kind: ConnectionDeviceInfoTimeout}
}

// ConnectAll opens every candidate serial port and returns the devices that
// successfully identified themselves within the device info timeout.
// Ports that fail to open or never respond are skipped, not reported as errors.
func ConnectAll(provider PortProvider) []any {
	ports, err := provider.ListPorts()
	if err != nil {
		return nil
	}
	var devices []any
	for _, pi := range ports {
		dev, err := connectByProbing(provider, pi.Name)
		if err != nil {
			continue
		}
		devices = append(devices, dev)
	}
	return devices
}

// ConnectWithNameAndBaudRate opens a specific port at a specific baud rate,
// skipping baud-rate probing.
func ConnectWithNameAndBaudRate(provider PortProvider, name string, baud int) (any, error) {
	port, err := provider.Open(name, baud)
	if err != nil {
		return nil, &ConnectionError{Kind: ConnectionPortOpen, Port: name, Err: err}
	}
	return handshake(port, name)
}

func connectByProbing(provider PortProvider, name string) (any, error) {
	var lastErr error
	for _, baud := range probeBaudRates {
		port, err := provider.Open(name, baud)
		if err != nil {
			lastErr = &ConnectionError{Kind: ConnectionPortOpen, Port: name, Err: err}
			continue
		}
		dev, err := handshake(port, name)
		if err == nil {
			return dev, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// handshake requests config from a freshly opened port and classifies the
// device as a SpectrumAnalyzer or SignalGenerator based on which SetupInfo
// prefix arrives ("#C2-M:" or "#C3-M:").
func handshake(port Port, name string) (any, error) {
	logger := newLogger().With("port", name)

	probe := newProbeContainer()
	r := newReader(port, probe, logger)
	go r.run()

	reqConfig, err := encodeRequestConfig()
	if err != nil {
		r.stop()
		return nil, err
	}
	if _, err := port.Write(reqConfig); err != nil {
		r.stop()
		return nil, &ConnectionError{Kind: ConnectionIO, Port: name, Err: err}
	}

	kind, ok := probe.kind.waitFor(func(_ string, ok bool) bool { return ok }, receiveInitialDeviceInfoTimeout)
	if !ok {
		r.stop()
		return nil, &ConnectionError{Kind: ConnectionDeviceInfoTimeout, Port: name}
	}

	switch kind {
	case "SA":
		saCache := newSAMessageContainer()
		replayProbe(probe, saCache)
		r.setCache(saCache)
		if !saCache.waitForDeviceInfo() {
			r.stop()
			return nil, &ConnectionError{Kind: ConnectionDeviceInfoTimeout, Port: name}
		}
		conn := &connection{port: port, portName: name, reader: r, logger: logger}

		setup, _ := saCache.setupInfo.get()
		sa := &SpectrumAnalyzer{
			conn:      conn,
			cache:     saCache,
			mainModel: setup.MainRadioModel,
			expModel:  setup.ExpansionRadioModel,
			firmware:  setup.FirmwareVersion,
			logger:    logger,
		}
		return sa, nil
	case "SG":
		sgCache := newSGMessageContainer()
		replaySGProbe(probe, sgCache)
		r.setCache(sgCache)
		if !sgCache.waitForDeviceInfo() {
			r.stop()
			return nil, &ConnectionError{Kind: ConnectionDeviceInfoTimeout, Port: name}
		}
		conn := &connection{port: port, portName: name, reader: r, logger: logger}

		setup, _ := sgCache.setupInfo.get()
		sg := &SignalGenerator{
			conn:      conn,
			cache:     sgCache,
			mainModel: setup.MainRadioModel,
			expModel:  setup.ExpansionRadioModel,
			firmware:  setup.FirmwareVersion,
			logger:    logger,
		}
		return sg, nil
	}
	r.stop()
	return nil, &ConnectionError{Kind: ConnectionDeviceInfoTimeout, Port: name}
}

// probeContainer is a throwaway cacher used only during the handshake
// window, before the device's kind (spectrum analyzer or signal generator)
// is known. It records SetupInfo, Config and SerialNumber messages so the
// handshake's own copies are not lost once the real per-kind cache takes
// over; messages of other kinds are dropped.
type probeContainer struct {
	kind       slot[string]
	saSetup    slot[SASetupInfo]
	sgSetup    slot[SGSetupInfo]
	config     slot[Config]
	serialNum  slot[SerialNumber]
}

func newProbeContainer() *probeContainer {
	return &probeContainer{
		kind:      *newSlot[string](),
		saSetup:   *newSlot[SASetupInfo](),
		sgSetup:   *newSlot[SGSetupInfo](),
		config:    *newSlot[Config](),
		serialNum: *newSlot[SerialNumber](),
	}
}

func (p *probeContainer) cacheMessage(msg Message) {
	switch m := msg.(type) {
	case SASetupInfo:
		p.saSetup.store(m)
		p.kind.store("SA")
	case SGSetupInfo:
		p.sgSetup.store(m)
		p.kind.store("SG")
	case Config:
		p.config.store(m)
	case SerialNumber:
		p.serialNum.store(m)
	}
}

func replayProbe(p *probeContainer, c *saMessageContainer) {
	if v, ok := p.saSetup.get(); ok {
		c.setupInfo.store(v)
	}
	if v, ok := p.config.get(); ok {
		c.config.storeAndNotify(v)
	}
	if v, ok := p.serialNum.get(); ok {
		c.serialNumber.store(v)
	}
}

func replaySGProbe(p *probeContainer, c *sgMessageContainer) {
	if v, ok := p.sgSetup.get(); ok {
		c.setupInfo.store(v)
	}
	if v, ok := p.serialNum.get(); ok {
		c.serialNumber.store(v)
	}
}
