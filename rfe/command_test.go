package rfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommand(t *testing.T) {
	buf, err := encodeCommand("C0")
	require.NoError(t, err)
	assert.Equal(t, []byte{'#', 4, 'C', '0'}, buf)
}

func TestEncodeCommandRejectsOversizedPayload(t *testing.T) {
	_, err := encodeCommand(string(make([]byte, 254)))
	assert.Error(t, err)
}

func TestEncodeSetConfig(t *testing.T) {
	buf, err := encodeSetConfig(433920, 434500, 0, -120)
	require.NoError(t, err)
	assert.Equal(t, "#"+string([]byte{byte(2 + len("C2-F:0433920,0434500,0000,-120"))})+"C2-F:0433920,0434500,0000,-120", string(buf))
}

func TestEncodeSetSweepPointsStandard(t *testing.T) {
	buf, err := encodeSetSweepPointsStandard(112)
	require.NoError(t, err)
	assert.Equal(t, byte('C'), buf[2])
	assert.Equal(t, byte('J'), buf[3])
	assert.Equal(t, byte((112-16)/16), buf[4])
}

func TestBaudRateCode(t *testing.T) {
	cases := map[int]byte{
		500000: '0',
		1200:   '1',
		2400:   '2',
		115200: '8',
	}
	for baud, want := range cases {
		got, err := baudRateCode(baud)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestBaudRateCodeRejectsUnsupportedRate(t *testing.T) {
	_, err := baudRateCode(9999)
	assert.Error(t, err)
}

func TestEncodeSetBaudRate(t *testing.T) {
	buf, err := encodeSetBaudRate(2400)
	require.NoError(t, err)
	assert.Equal(t, []byte{'#', 4, 'c', '2'}, buf)
}

func TestEncodeSetLcdEnabled(t *testing.T) {
	on, err := encodeSetLcdEnabled(true)
	require.NoError(t, err)
	assert.Equal(t, []byte{'#', 4, 'L', '1'}, on)

	off, err := encodeSetLcdEnabled(false)
	require.NoError(t, err)
	assert.Equal(t, []byte{'#', 4, 'L', '0'}, off)
}

func TestEncodeSetCw(t *testing.T) {
	buf, err := encodeSetCw(186525, AttenuationOn, PowerLevelLow, RfPowerOn)
	require.NoError(t, err)
	assert.Equal(t, "C3-F:0186525,0,1,0", string(buf[2:]))
}

func TestEncodeSetCwExpUsesExpansionPrefix(t *testing.T) {
	buf, err := encodeSetCwExp(186525, AttenuationOn, PowerLevelLow, RfPowerOn)
	require.NoError(t, err)
	assert.Equal(t, "C5-F:0186525,0,1,0", string(buf[2:]))
}

func TestEncodeSetGeneratorPower(t *testing.T) {
	on, err := encodeSetGeneratorPower(true)
	require.NoError(t, err)
	assert.Equal(t, []byte{'#', 5, 'C', 'P', '1'}, on)
}
