// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlkeyboard binds go-sdl2 scancodes onto keyboard.Key, so the host
// keyboard state can be snapshotted into the bus's pressed-key map at each
// frame boundary.
package sdlkeyboard

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/nilclass/c64emu/keyboard"
)

// mapping binds every matrix position to a host scancode. Host scancodes
// are a pragmatic approximation of the C64's silk-screened legend, not a
// physical layout match, and may be customized by callers that construct
// their own table.
var mapping = map[sdl.Scancode]keyboard.Key{
	sdl.SCANCODE_BACKSPACE: keyboard.Delete,
	sdl.SCANCODE_RETURN:    keyboard.Return,
	sdl.SCANCODE_RIGHT:     keyboard.CursorRight,
	sdl.SCANCODE_F7:        keyboard.F7,
	sdl.SCANCODE_F1:        keyboard.F1,
	sdl.SCANCODE_F3:        keyboard.F3,
	sdl.SCANCODE_F5:        keyboard.F5,
	sdl.SCANCODE_DOWN:      keyboard.CursorDown,

	sdl.SCANCODE_3:      keyboard.Three,
	sdl.SCANCODE_W:      keyboard.W,
	sdl.SCANCODE_A:      keyboard.A,
	sdl.SCANCODE_4:      keyboard.Four,
	sdl.SCANCODE_Z:      keyboard.Z,
	sdl.SCANCODE_S:      keyboard.S,
	sdl.SCANCODE_E:      keyboard.E,
	sdl.SCANCODE_LSHIFT: keyboard.LeftShift,

	sdl.SCANCODE_5: keyboard.Five,
	sdl.SCANCODE_R: keyboard.R,
	sdl.SCANCODE_D: keyboard.D,
	sdl.SCANCODE_6: keyboard.Six,
	sdl.SCANCODE_C: keyboard.C,
	sdl.SCANCODE_F: keyboard.F,
	sdl.SCANCODE_T: keyboard.T,
	sdl.SCANCODE_X: keyboard.X,

	sdl.SCANCODE_7: keyboard.Seven,
	sdl.SCANCODE_Y: keyboard.Y,
	sdl.SCANCODE_G: keyboard.G,
	sdl.SCANCODE_8: keyboard.Eight,
	sdl.SCANCODE_B: keyboard.B,
	sdl.SCANCODE_H: keyboard.H,
	sdl.SCANCODE_U: keyboard.U,
	sdl.SCANCODE_V: keyboard.V,

	sdl.SCANCODE_9: keyboard.Nine,
	sdl.SCANCODE_I: keyboard.I,
	sdl.SCANCODE_J: keyboard.J,
	sdl.SCANCODE_0: keyboard.Zero,
	sdl.SCANCODE_M: keyboard.M,
	sdl.SCANCODE_K: keyboard.K,
	sdl.SCANCODE_O: keyboard.O,
	sdl.SCANCODE_N: keyboard.N,

	sdl.SCANCODE_EQUALS:      keyboard.Plus,
	sdl.SCANCODE_P:           keyboard.P,
	sdl.SCANCODE_L:           keyboard.L,
	sdl.SCANCODE_MINUS:       keyboard.Minus,
	sdl.SCANCODE_PERIOD:      keyboard.Period,
	sdl.SCANCODE_SEMICOLON:   keyboard.Colon,
	sdl.SCANCODE_APOSTROPHE:  keyboard.At,
	sdl.SCANCODE_COMMA:       keyboard.Comma,

	sdl.SCANCODE_NONUSBACKSLASH: keyboard.Pound,
	sdl.SCANCODE_KP_MULTIPLY:    keyboard.Star,
	sdl.SCANCODE_SLASH:          keyboard.Semicolon,
	sdl.SCANCODE_HOME:           keyboard.Home,
	sdl.SCANCODE_RSHIFT:         keyboard.RightShift,
	sdl.SCANCODE_GRAVE:          keyboard.Equals,
	sdl.SCANCODE_LEFTBRACKET:    keyboard.UpArrow,
	sdl.SCANCODE_BACKSLASH:      keyboard.Slash,

	sdl.SCANCODE_1:      keyboard.One,
	sdl.SCANCODE_TAB:    keyboard.LeftArrow,
	sdl.SCANCODE_LCTRL:  keyboard.Ctrl,
	sdl.SCANCODE_2:      keyboard.Two,
	sdl.SCANCODE_SPACE:  keyboard.Space,
	sdl.SCANCODE_LALT:   keyboard.Commodore,
	sdl.SCANCODE_Q:      keyboard.Q,
	sdl.SCANCODE_ESCAPE: keyboard.RunStop,
}

// Pressed reads the current SDL keyboard state and returns the set of C64
// keys it maps to, suitable for Bus.SetPressedKeys.
func Pressed() map[keyboard.Key]bool {
	state := sdl.GetKeyboardState()
	pressed := make(map[keyboard.Key]bool)
	for scancode, key := range mapping {
		if state[scancode] != 0 {
			pressed[key] = true
		}
	}
	return pressed
}
