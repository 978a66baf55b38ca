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

// Package sdlsurface implements display.Surface on top of go-sdl2, scaling
// every coordinate the VIC passes in by a fixed integer factor.
package sdlsurface

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/nilclass/c64emu/display"
)

// Surface owns an SDL window and renderer sized to the C64's window
// dimensions scaled by Scale.
type Surface struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
}

// New opens a window titled title, sized for the C64's border-plus-viewport
// window at the given integer scale, and returns a Surface drawing into it.
func New(title string, scale int) (*Surface, error) {
	if scale < 1 {
		scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdlsurface: %w", err)
	}

	w := int32(display.WindowWidth * scale)
	h := int32(display.WindowHeight * scale)

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("sdlsurface: creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("sdlsurface: creating renderer: %w", err)
	}

	return &Surface{
		window:   window,
		renderer: renderer,
		scale:    int32(scale),
	}, nil
}

// Close destroys the renderer and window.
func (s *Surface) Close() {
	s.renderer.Destroy()
	s.window.Destroy()
}

// SetDrawColor implements display.Surface.
func (s *Surface) SetDrawColor(paletteEntry uint8) {
	rgb := display.Palette[paletteEntry%16]
	s.renderer.SetDrawColor(rgb[0], rgb[1], rgb[2], 0xff)
}

// Clear implements display.Surface.
func (s *Surface) Clear() {
	s.renderer.Clear()
}

// FillRect implements display.Surface, scaling the rectangle by Scale.
func (s *Surface) FillRect(x, y, w, h int) {
	rect := sdl.Rect{
		X: int32(x) * s.scale,
		Y: int32(y) * s.scale,
		W: int32(w) * s.scale,
		H: int32(h) * s.scale,
	}
	s.renderer.FillRect(&rect)
}

// Present implements display.Surface.
func (s *Surface) Present() {
	s.renderer.Present()
}
