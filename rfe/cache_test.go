package rfe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStoreAndGet(t *testing.T) {
	s := newSlot[int]()
	_, ok := s.get()
	assert.False(t, ok)

	s.store(42)
	v, ok := s.get()
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestSlotWaitForTimesOut(t *testing.T) {
	s := newSlot[int]()
	_, ok := s.waitFor(func(int, bool) bool { return false }, 20*time.Millisecond)
	assert.False(t, ok)
}

func TestSlotWaitForWakesOnStore(t *testing.T) {
	s := newSlot[int]()
	go func() {
		time.Sleep(5 * time.Millisecond)
		s.store(7)
	}()
	v, ok := s.waitFor(func(_ int, ok bool) bool { return ok }, time.Second)
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestSAMessageContainerDispatchesByConcreteType(t *testing.T) {
	c := newSAMessageContainer()
	c.cacheMessage(Config{Start: FromMHz(433)})
	c.cacheMessage(Sweep{AmplitudesDBm: []float64{-10}})
	c.cacheMessage(DspMode(DspModeFast))

	cfg, ok := c.config.get()
	require.True(t, ok)
	assert.Equal(t, FromMHz(433), cfg.Start)

	sweep, ok := c.sweep.get()
	require.True(t, ok)
	assert.Equal(t, []float64{-10}, sweep.AmplitudesDBm)

	mode, ok := c.dspMode.get()
	require.True(t, ok)
	assert.Equal(t, DspModeFast, mode)
}

func TestSAMessageContainerConfigCallback(t *testing.T) {
	c := newSAMessageContainer()
	var got Config
	c.config.setCallback(func(cfg Config) { got = cfg })

	c.cacheMessage(Config{Start: FromMHz(915)})
	assert.Equal(t, FromMHz(915), got.Start)
}

func TestSAMessageContainerWaitForDeviceInfo(t *testing.T) {
	c := newSAMessageContainer()
	go func() {
		time.Sleep(5 * time.Millisecond)
		c.cacheMessage(Config{})
		c.cacheMessage(SASetupInfo{MainRadioModel: SAModel433M})
	}()
	assert.True(t, c.waitForDeviceInfo())
}

func TestSAMessageContainerWaitForDeviceInfoTimesOut(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the real device-info timeout")
	}
	c := newSAMessageContainer()
	assert.False(t, c.waitForDeviceInfo())
}
