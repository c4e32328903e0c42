// Package joypad models the LR35902 joypad register at 0xFF00. Button
// mapping and input capture are a host concern; this package only holds
// the register semantics a game reads back.
package joypad

// Button is a bitmask identifying one physical button.
type Button = uint8

const (
	ButtonA      Button = 0x01
	ButtonB      Button = 0x02
	ButtonSelect Button = 0x04
	ButtonStart  Button = 0x08
	ButtonRight  Button = 0x10
	ButtonLeft   Button = 0x20
	ButtonUp     Button = 0x40
	ButtonDown   Button = 0x80
)

// State holds the select register and the pressed-button mask.
type State struct {
	register byte
	pressed  Button
}

// New returns a State with no group selected (matching the register's
// post-power-on value of 0x3F: both select bits high, both groups
// unselected).
func New() *State {
	return &State{register: 0x3F}
}

// Read returns the current value of the joypad register. Bits 7-6 always
// read 1; bits 5-4 are the select group as last written; bits 3-0 reflect
// the pressed buttons of whichever group is selected (active-low), or all
// 1s when no group is selected.
func (s *State) Read() uint8 {
	result := s.register | 0xC0
	if s.register&0x10 == 0 {
		result &^= (s.pressed >> 4) & 0x0F
	}
	if s.register&0x20 == 0 {
		result &^= s.pressed & 0x0F
	}
	return result
}

// Write updates the select bits (5-4); the button bits are read-only.
func (s *State) Write(value byte) {
	s.register = (s.register & 0xCF) | (value & 0x30)
}

// SetPressed replaces the full pressed-button mask, as driven by a host
// frontend or a test.
func (s *State) SetPressed(mask Button) {
	s.pressed = mask
}
