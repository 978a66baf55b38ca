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

// Package display defines the host surface the VIC-II paints through, and
// the 16-entry RGB palette a concrete surface resolves palette entries
// against.
package display

// Surface is the small drawing API the VIC-II drives. It never touches
// pixels directly: every shape it wants painted goes through one of these
// four calls. A concrete surface owns the window, renderer and the scale
// factor applied to every coordinate and size it receives.
type Surface interface {
	// SetDrawColor selects one of the 16 palette entries for subsequent
	// Clear/FillRect calls.
	SetDrawColor(paletteEntry uint8)

	// Clear fills the entire surface with the current draw color.
	Clear()

	// FillRect paints a rectangle, in unscaled VIC coordinates, with the
	// current draw color.
	FillRect(x, y, w, h int)

	// Present flips the completed frame to the screen.
	Present()
}

// Palette is the pepto.de-measured C64 RGB palette, indexed by the 4-bit
// color values the VIC reads out of its registers and color RAM.
var Palette = [16][3]uint8{
	{0x00, 0x00, 0x00}, // 0: black
	{0xff, 0xff, 0xff}, // 1: white
	{0x68, 0x37, 0x2b}, // 2: red
	{0x70, 0xa4, 0xb2}, // 3: cyan
	{0x6f, 0x3d, 0x86}, // 4: purple
	{0x58, 0x8d, 0x43}, // 5: green
	{0x35, 0x28, 0x79}, // 6: blue
	{0xb8, 0xc7, 0x6f}, // 7: yellow
	{0x6f, 0x4f, 0x25}, // 8: orange
	{0x43, 0x39, 0x00}, // 9: brown
	{0x9a, 0x67, 0x59}, // 10: light red
	{0x44, 0x44, 0x44}, // 11: dark gray
	{0x6c, 0x6c, 0x6c}, // 12: gray
	{0x9a, 0xd2, 0x84}, // 13: light green
	{0x6c, 0x5e, 0xb5}, // 14: light blue
	{0x95, 0x95, 0x95}, // 15: light gray
}

// Border and viewport dimensions, in unscaled VIC coordinates.
const (
	BorderWidth    = 32
	BorderHeight   = 16
	ViewableWidth  = 320
	ViewableHeight = 200
	WindowWidth    = ViewableWidth + BorderWidth*2
	WindowHeight   = ViewableHeight + BorderHeight*2
)
