package schedulers

import "sync/atomic"

// Flag visibility toggled from outside, visible by default
type Flag struct {
	hidden atomic.Bool
}

// NewFlag create visible flag
func NewFlag() *Flag {
	return new(Flag)
}

// Visible viewer is in the foreground
func (f *Flag) Visible() bool {
	return !f.hidden.Load()
}

// Show mark viewer foreground
func (f *Flag) Show() {
	f.hidden.Store(false)
}

// Hide mark viewer background
func (f *Flag) Hide() {
	f.hidden.Store(true)
}
