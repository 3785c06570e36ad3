package rfe

import "fmt"

// Frequency is a scalar radio frequency stored internally as integer Hz.
type Frequency int64

// FromHz, FromKHz, and FromMHz construct a Frequency from the named unit.
func FromHz(hz int64) Frequency     { return Frequency(hz) }
func FromKHz(khz float64) Frequency { return Frequency(khz * 1000) }
func FromMHz(mhz float64) Frequency { return Frequency(mhz * 1_000_000) }

// Hz, KHz, and MHz convert back to the named unit.
func (f Frequency) Hz() int64      { return int64(f) }
func (f Frequency) KHz() float64   { return float64(f) / 1000 }
func (f Frequency) MHz() float64   { return float64(f) / 1_000_000 }

func (f Frequency) Add(other Frequency) Frequency { return f + other }
func (f Frequency) Sub(other Frequency) Frequency { return f - other }
func (f Frequency) Div(n int64) Frequency         { return Frequency(int64(f) / n) }

func (f Frequency) String() string {
	return fmt.Sprintf("%.3fMHz", f.MHz())
}
