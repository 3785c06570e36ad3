package rfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSignalGenerator(t *testing.T, hasExp bool) (*SignalGenerator, *fakePort) {
	t.Helper()
	port := newFakePort()
	cache := newSGMessageContainer()
	r := newReader(port, cache, testLogger())
	go r.run()
	t.Cleanup(func() { r.stop() })

	conn := &connection{port: port, portName: "fake0", reader: r, logger: testLogger()}
	sg := &SignalGenerator{conn: conn, cache: cache, logger: testLogger()}
	if hasExp {
		m := SGModelRFE6GenExpansion
		sg.expModel = &m
	}
	return sg, port
}

func TestSetCwRejectsNonPositiveFrequency(t *testing.T) {
	sg, _ := newTestSignalGenerator(t, false)
	err := sg.SetCw(0, AttenuationOn, PowerLevelLow, RfPowerOn)
	assert.Error(t, err)
}

func TestSetCwExpRequiresExpansionModel(t *testing.T) {
	sg, _ := newTestSignalGenerator(t, false)
	err := sg.SetCwExp(FromMHz(433), AttenuationOn, PowerLevelLow, RfPowerOn)
	assert.Error(t, err)
}

func TestSetCwExpAllowedWithExpansionModel(t *testing.T) {
	sg, port := newTestSignalGenerator(t, true)
	err := sg.SetCwExp(FromMHz(433), AttenuationOn, PowerLevelLow, RfPowerOn)
	require.NoError(t, err)
	assert.Contains(t, string(port.writtenBytes()), "C5-F:")
}

func TestSetFreqSweepRejectsNonPositiveSteps(t *testing.T) {
	sg, _ := newTestSignalGenerator(t, false)
	err := sg.SetFreqSweep(FromMHz(433), FromKHz(1), 0, AttenuationOn, PowerLevelLow, RfPowerOn, 10)
	assert.Error(t, err)
}

func TestSignalGeneratorSerialNumberReturnsCachedValueWithoutSending(t *testing.T) {
	sg, port := newTestSignalGenerator(t, false)
	sg.cache.serialNumber.store(SerialNumber{Value: "1234567890123456"})

	sn, err := sg.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "1234567890123456", sn.Value)
	assert.Empty(t, port.writtenBytes())
}
