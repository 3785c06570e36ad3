package rfe

import (
	"sync"
	"time"
)

// slot is a mutex+condvar box holding the most recently received value of
// one message kind. Mirrors the retrieved Rust reference's
// "(Mutex<Option<T>>, Condvar)" pairs, one per field of MessageContainer.
type slot[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	value *T
}

func newSlot[T any]() *slot[T] {
	s := &slot[T]{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *slot[T]) store(v T) {
	s.mu.Lock()
	s.value = &v
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *slot[T]) get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		var zero T
		return zero, false
	}
	return *s.value, true
}

func (s *slot[T]) clear() {
	s.mu.Lock()
	s.value = nil
	s.mu.Unlock()
}

// waitFor blocks until pred(current value) is true or timeout elapses. It
// returns the latest value and true once pred holds, or the latest value
// and false on timeout.
// sync.Cond has no timed wait, so the deadline is enforced by a waker
// goroutine that broadcasts once time runs out -- the same shape the
// retrieved Rust reference gets for free from wait_timeout_while.
func (s *slot[T]) waitFor(pred func(T, bool) bool, timeout time.Duration) (T, bool) {
	deadline := time.Now().Add(timeout)
	done := make(chan struct{})
	defer close(done)
	go func() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		select {
		case <-timer.C:
			// Broadcast under the lock so the wakeup cannot fall between
			// the waiter's deadline check and its call to Wait.
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		case <-done:
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		var cur T
		ok := false
		if s.value != nil {
			cur = *s.value
			ok = true
		}
		if pred(cur, ok) {
			return cur, true
		}
		if !time.Now().Before(deadline) {
			return cur, false
		}
		s.cond.Wait()
	}
}

// callbackSlot[T] pairs a value slot with an optional user callback invoked
// on every store, outside the slot's own lock (the reference implementation
// re-locks to read the just-stored value instead; here the stored value is
// passed directly since no lock is held across the call).
type callbackSlot[T any] struct {
	slot[T]
	cbMu sync.Mutex
	cb   func(T)
}

func (s *callbackSlot[T]) setCallback(cb func(T)) {
	s.cbMu.Lock()
	s.cb = cb
	s.cbMu.Unlock()
}

func (s *callbackSlot[T]) storeAndNotify(v T) {
	s.slot.store(v)
	s.cbMu.Lock()
	cb := s.cb
	s.cbMu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// receiveInitialDeviceInfoTimeout bounds how long discovery waits for both
// Config and SetupInfo after opening a candidate port. Larger than
// commandResponseTimeout to cover device boot-up.
const receiveInitialDeviceInfoTimeout = 5 * time.Second

// saMessageContainer caches every message kind a spectrum analyzer emits.
type saMessageContainer struct {
	config         callbackSlot[Config]
	sweep          callbackSlot[Sweep]
	screenData     slot[ScreenData]
	dspMode        slot[DspMode]
	trackingStatus slot[TrackingStatus]
	inputStage     slot[InputStage]
	setupInfo      slot[SASetupInfo]
	serialNumber   slot[SerialNumber]
}

func newSAMessageContainer() *saMessageContainer {
	return &saMessageContainer{
		config:         callbackSlot[Config]{slot: *newSlot[Config]()},
		sweep:          callbackSlot[Sweep]{slot: *newSlot[Sweep]()},
		screenData:     *newSlot[ScreenData](),
		dspMode:        *newSlot[DspMode](),
		trackingStatus: *newSlot[TrackingStatus](),
		inputStage:     *newSlot[InputStage](),
		setupInfo:      *newSlot[SASetupInfo](),
		serialNumber:   *newSlot[SerialNumber](),
	}
}

// cacheMessage dispatches a decoded Message to its slot. Unrecognized
// concrete types (e.g. a signal generator message arriving on a spectrum
// analyzer connection, which should never happen but is not fatal) are
// dropped silently.
func (c *saMessageContainer) cacheMessage(msg Message) {
	switch m := msg.(type) {
	case Config:
		c.config.storeAndNotify(m)
	case Sweep:
		c.sweep.storeAndNotify(m)
	case ScreenData:
		c.screenData.store(m)
	case DspMode:
		c.dspMode.store(m)
	case TrackingStatus:
		c.trackingStatus.store(m)
	case InputStage:
		c.inputStage.store(m)
	case SASetupInfo:
		c.setupInfo.store(m)
	case SerialNumber:
		c.serialNumber.store(m)
	}
}

// waitForDeviceInfo blocks until both Config and SetupInfo have been
// received, or receiveInitialDeviceInfoTimeout elapses.
func (c *saMessageContainer) waitForDeviceInfo() bool {
	if _, ok := c.config.get(); ok {
		if _, ok := c.setupInfo.get(); ok {
			return true
		}
	}
	deadline := time.Now().Add(receiveInitialDeviceInfoTimeout)
	_, gotConfig := c.config.waitFor(func(_ Config, ok bool) bool { return ok }, receiveInitialDeviceInfoTimeout)
	if !gotConfig {
		return false
	}
	_, gotSetup := c.setupInfo.waitFor(func(_ SASetupInfo, ok bool) bool { return ok }, time.Until(deadline))
	return gotSetup
}

// sgMessageContainer caches every message kind a signal generator emits.
type sgMessageContainer struct {
	setupInfo       slot[SGSetupInfo]
	serialNumber    slot[SerialNumber]
	temperature     slot[Temperature]
	configCw        slot[ConfigCw]
	configFreqSweep slot[ConfigFreqSweep]
	configAmpSweep  slot[ConfigAmpSweep]
}

func newSGMessageContainer() *sgMessageContainer {
	return &sgMessageContainer{
		setupInfo:       *newSlot[SGSetupInfo](),
		serialNumber:    *newSlot[SerialNumber](),
		temperature:     *newSlot[Temperature](),
		configCw:        *newSlot[ConfigCw](),
		configFreqSweep: *newSlot[ConfigFreqSweep](),
		configAmpSweep:  *newSlot[ConfigAmpSweep](),
	}
}

func (c *sgMessageContainer) cacheMessage(msg Message) {
	switch m := msg.(type) {
	case SGSetupInfo:
		c.setupInfo.store(m)
	case SerialNumber:
		c.serialNumber.store(m)
	case Temperature:
		c.temperature.store(m)
	case ConfigCw:
		c.configCw.store(m)
	case ConfigFreqSweep:
		c.configFreqSweep.store(m)
	case ConfigAmpSweep:
		c.configAmpSweep.store(m)
	}
}

func (c *sgMessageContainer) waitForDeviceInfo() bool {
	if _, ok := c.setupInfo.get(); ok {
		return true
	}
	_, ok := c.setupInfo.waitFor(func(_ SGSetupInfo, ok bool) bool { return ok }, receiveInitialDeviceInfoTimeout)
	return ok
}
