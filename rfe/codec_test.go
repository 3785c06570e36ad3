package rfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	frame := []byte("#C2-F:0433920,0000050,0000,-120,0112,0,00,0433050,0434500,0001450,000,000,00\r\n")
	msg, n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)

	cfg, ok := msg.(Config)
	require.True(t, ok)
	assert.Equal(t, FromKHz(433920), cfg.Start)
	assert.Equal(t, 0, cfg.MaxAmpDBm)
	assert.Equal(t, -120, cfg.MinAmpDBm)
	assert.Equal(t, 112, cfg.SweepPoints)
	assert.False(t, cfg.IsExpansionRadioModuleActive)
}

func TestDecodeSASetupInfo(t *testing.T) {
	msg, n, err := Decode([]byte("#C2-M:003,255,01.15\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 21, n)

	info, ok := msg.(SASetupInfo)
	require.True(t, ok)
	assert.Equal(t, SAModelWSUB1G, info.MainRadioModel)
	assert.Nil(t, info.ExpansionRadioModel)
	assert.Equal(t, "01.15", info.FirmwareVersion)
}

func TestDecodeSGSetupInfo(t *testing.T) {
	msg, n, err := Decode([]byte("#C3-M:060,061,01.15\r\n"))
	require.NoError(t, err)
	assert.True(t, n > 0)

	info, ok := msg.(SGSetupInfo)
	require.True(t, ok)
	assert.Equal(t, SGModelRFE6Gen, info.MainRadioModel)
	require.NotNil(t, info.ExpansionRadioModel)
	assert.Equal(t, SGModelRFE6GenExpansion, *info.ExpansionRadioModel)
}

func TestDecodeConfigAmpSweep(t *testing.T) {
	frame := []byte("#C3-A:0186525,0000,0,0,1,3,0,00100\r\n")
	msg, n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)

	cfg, ok := msg.(ConfigAmpSweep)
	require.True(t, ok)
	assert.Equal(t, 186525, cfg.CwFreqKHz)
	assert.Equal(t, 0, cfg.SweepPowerSteps)
	assert.Equal(t, AttenuationOn, cfg.StartAttenuation)
	assert.Equal(t, PowerLevelLowest, cfg.StartPowerLevel)
	assert.Equal(t, AttenuationOff, cfg.StopAttenuation)
	assert.Equal(t, PowerLevelHighest, cfg.StopPowerLevel)
	assert.Equal(t, RfPowerOn, cfg.RfPower)
	assert.Equal(t, 100, cfg.SweepDelayMs)
	assert.False(t, cfg.IsExpansion)
}

func TestDecodeConfigAmpSweepExp(t *testing.T) {
	frame := []byte("#C5-A:0186525,0000,0,0,1,3,0,00100\r\n")
	msg, _, err := Decode(frame)
	require.NoError(t, err)
	cfg, ok := msg.(ConfigAmpSweep)
	require.True(t, ok)
	assert.True(t, cfg.IsExpansion)
}

func TestDecodeSerialNumber(t *testing.T) {
	frame := append([]byte("#Sn1234567890123456"), '\r', '\n')
	msg, n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)
	sn, ok := msg.(SerialNumber)
	require.True(t, ok)
	assert.Equal(t, "1234567890123456", sn.Value)
}

func TestDecodeTemperature(t *testing.T) {
	msg, _, err := Decode([]byte("#C3-T:+025\r\n"))
	require.NoError(t, err)
	temp, ok := msg.(Temperature)
	require.True(t, ok)
	assert.Equal(t, 25, temp.ValueDBm)
}

func TestDecodeIncompleteWaitsForMoreBytes(t *testing.T) {
	_, _, err := Decode([]byte("#C2-F:0433920,0000050"))
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ParseIncomplete, pe.Kind)
}

func TestDecodeUnknownMessageType(t *testing.T) {
	_, _, err := Decode([]byte("garbage"))
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ParseUnknownMessageType, pe.Kind)
}
