package rfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfigCw(t *testing.T) {
	frame := []byte("#C3-F:0186525,0,1,0\r\n")
	msg, n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)

	cfg, ok := msg.(ConfigCw)
	require.True(t, ok)
	assert.Equal(t, 186525, cfg.FreqKHz)
	assert.Equal(t, AttenuationOn, cfg.Attenuation)
	assert.Equal(t, PowerLevelLow, cfg.PowerLevel)
	assert.Equal(t, RfPowerOn, cfg.RfPower)
	assert.False(t, cfg.IsExpansion)
}

func TestDecodeConfigCwExp(t *testing.T) {
	frame := []byte("#C5-F:0186525,0,1,0\r\n")
	msg, _, err := Decode(frame)
	require.NoError(t, err)
	cfg, ok := msg.(ConfigCw)
	require.True(t, ok)
	assert.True(t, cfg.IsExpansion)
}

func TestDecodeConfigFreqSweep(t *testing.T) {
	frame := []byte("#C3-P:0186525,0001000,0100,0,1,0,00050\r\n")
	msg, n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)

	cfg, ok := msg.(ConfigFreqSweep)
	require.True(t, ok)
	assert.Equal(t, 186525, cfg.StartFreqKHz)
	assert.Equal(t, 1000, cfg.FreqStepHz)
	assert.Equal(t, 100, cfg.SweepSteps)
	assert.Equal(t, AttenuationOn, cfg.Attenuation)
	assert.Equal(t, PowerLevelLow, cfg.PowerLevel)
	assert.Equal(t, RfPowerOn, cfg.RfPower)
	assert.Equal(t, 50, cfg.SweepDelayMs)
	assert.False(t, cfg.IsExpansion)
}

func TestDecodeConfigFreqSweepRejectsWrongFieldCount(t *testing.T) {
	_, _, err := Decode([]byte("#C3-P:0186525,0001000\r\n"))
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ParseInvalid, pe.Kind)
}
