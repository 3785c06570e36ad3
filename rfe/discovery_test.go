package rfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectWithNameAndBaudRateClassifiesSpectrumAnalyzer(t *testing.T) {
	port := newFakePort()
	port.push([]byte("#C2-M:003,255,01.15\r\n"))
	port.push([]byte("#C2-F:0433920,0434500,0000,-120,0112,0,00,0433050,0434500,0001450,000,000,00\r\n"))
	provider := newFakePortProvider(map[string]*fakePort{"fake0": port})

	dev, err := ConnectWithNameAndBaudRate(provider, "fake0", 500000)
	require.NoError(t, err)

	sa, ok := dev.(*SpectrumAnalyzer)
	require.True(t, ok)
	assert.Equal(t, SAModelWSUB1G, sa.mainModel)
	assert.Nil(t, sa.expModel)
	t.Cleanup(func() { sa.Close() })
}

func TestConnectWithNameAndBaudRateClassifiesSignalGenerator(t *testing.T) {
	port := newFakePort()
	port.push([]byte("#C3-M:060,061,01.15\r\n"))
	provider := newFakePortProvider(map[string]*fakePort{"fake0": port})

	dev, err := ConnectWithNameAndBaudRate(provider, "fake0", 500000)
	require.NoError(t, err)

	sg, ok := dev.(*SignalGenerator)
	require.True(t, ok)
	assert.Equal(t, SGModelRFE6Gen, sg.mainModel)
	require.NotNil(t, sg.expModel)
	assert.Equal(t, SGModelRFE6GenExpansion, *sg.expModel)
	t.Cleanup(func() { sg.Close() })
}

func TestConnectWithNameAndBaudRateTimesOutWithoutResponse(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the real device-info timeout")
	}
	port := newFakePort()
	provider := newFakePortProvider(map[string]*fakePort{"fake0": port})

	_, err := ConnectWithNameAndBaudRate(provider, "fake0", 500000)
	assert.Error(t, err)
}

func TestConnectWithNameAndBaudRateRequiresConfigNotJustSetupInfo(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the real device-info timeout")
	}
	port := newFakePort()
	port.push([]byte("#C2-M:003,255,01.15\r\n"))
	provider := newFakePortProvider(map[string]*fakePort{"fake0": port})

	_, err := ConnectWithNameAndBaudRate(provider, "fake0", 500000)
	assert.Error(t, err)
}

func TestConnectAllSkipsPortsThatNeverRespond(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the real device-info timeout")
	}
	dead := newFakePort()
	live := newFakePort()
	live.push([]byte("#C2-M:003,255,01.15\r\n"))
	live.push([]byte("#C2-F:0433920,0434500,0000,-120,0112,0,00,0433050,0434500,0001450,000,000,00\r\n"))
	provider := newFakePortProvider(map[string]*fakePort{"dead": dead, "live": live})

	devices := ConnectAll(provider)
	require.Len(t, devices, 1)
	_, ok := devices[0].(*SpectrumAnalyzer)
	assert.True(t, ok)
}
