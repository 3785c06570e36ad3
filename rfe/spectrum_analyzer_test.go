package rfe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpectrumAnalyzer(t *testing.T, model SAModel) (*SpectrumAnalyzer, *fakePort) {
	t.Helper()
	port := newFakePort()
	cache := newSAMessageContainer()
	r := newReader(port, cache, testLogger())
	go r.run()
	t.Cleanup(func() { r.stop() })

	conn := &connection{port: port, portName: "fake0", reader: r, logger: testLogger()}
	sa := &SpectrumAnalyzer{conn: conn, cache: cache, mainModel: model, logger: testLogger()}
	return sa, port
}

func TestSetStartStopRejectsInvertedRange(t *testing.T) {
	sa, _ := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	err := sa.SetStartStop(FromMHz(434), FromMHz(433))
	assert.Error(t, err)
}

func TestSetStartStopRejectsOutOfModelRange(t *testing.T) {
	sa, _ := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	err := sa.SetStartStop(FromMHz(10), FromMHz(20))
	assert.Error(t, err)
}

func TestSetStartStopShortCircuitsOnMatchingConfig(t *testing.T) {
	sa, port := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	sa.cache.config.store(Config{
		Start: FromKHz(433920), Stop: FromKHz(434500),
		MinAmpDBm: -120, MaxAmpDBm: 0,
	})

	err := sa.SetStartStop(FromKHz(433920), FromKHz(434500))
	require.NoError(t, err)
	assert.Empty(t, port.writtenBytes(), "matching config should short-circuit without sending a command")
}

func TestSetMinMaxAmpsRejectsOutOfRange(t *testing.T) {
	sa, _ := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	err := sa.SetMinMaxAmps(-200, 0)
	assert.Error(t, err)
}

func TestSetSweepPointsRejectsNonPlusModel(t *testing.T) {
	sa, _ := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	err := sa.SetSweepPoints(4096)
	assert.Error(t, err)
}

func TestSetSweepPointsAllowsPlusModel(t *testing.T) {
	sa, port := newTestSpectrumAnalyzer(t, SAModelWSUB1GPlus)
	sa.cache.config.store(Config{SweepPoints: 256})

	err := sa.SetSweepPoints(256)
	require.NoError(t, err)
	assert.NotEmpty(t, port.writtenBytes())
}

func TestActivateExpansionRadioModuleRequiresExpansionModel(t *testing.T) {
	sa, _ := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	err := sa.ActivateExpansionRadioModule()
	assert.Error(t, err)
}

func TestWaitForNextSweepTimesOutWithoutNewSweep(t *testing.T) {
	sa, _ := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	_, err := sa.WaitForNextSweepWithTimeout(20 * time.Millisecond)
	assert.Error(t, err)
}

func TestSerialNumberReturnsCachedValueWithoutSending(t *testing.T) {
	sa, port := newTestSpectrumAnalyzer(t, SAModelWSUB1G)
	sa.cache.serialNumber.store(SerialNumber{Value: "1234567890123456"})

	sn, err := sa.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "1234567890123456", sn.Value)
	assert.Empty(t, port.writtenBytes())
}
