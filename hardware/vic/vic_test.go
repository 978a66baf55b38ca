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

package vic_test

import (
	"testing"

	"github.com/nilclass/c64emu/hardware/memory"
	"github.com/nilclass/c64emu/hardware/memory/memorymap"
	"github.com/nilclass/c64emu/hardware/vic"
	"github.com/nilclass/c64emu/test"
)

// recordingSurface implements display.Surface and remembers every call, so
// tests can assert on the paint sequence without an actual window.
type recordingSurface struct {
	drawColor   uint8
	cleared     bool
	fillRects   []fillRect
	colorAtFill []uint8
	presented   bool
}

type fillRect struct{ x, y, w, h int }

func (r *recordingSurface) SetDrawColor(paletteEntry uint8) { r.drawColor = paletteEntry }
func (r *recordingSurface) Clear()                          { r.cleared = true }
func (r *recordingSurface) FillRect(x, y, w, h int) {
	r.fillRects = append(r.fillRects, fillRect{x, y, w, h})
	r.colorAtFill = append(r.colorAtFill, r.drawColor)
}
func (r *recordingSurface) Present() { r.presented = true }

func TestRefreshPaintsBlankTextModeInBackgroundColor(t *testing.T) {
	mem := memory.NewBus()
	v := vic.NewVIC()

	test.ExpectSuccess(t, v.Init(mem))

	// select VIC bank 0, so the video matrix write below lands where the
	// VIC's view of memory expects it
	test.ExpectSuccess(t, mem.CIAWrite(memorymap.CIA2PortA, 0x03))

	// video-matrix base after Init ($D018 = $14) is $0400; fill all 1000
	// cells with character $20 (blank space glyph, since char ROM is
	// unloaded and reads as zero)
	blank := make([]byte, 1000)
	for i := range blank {
		blank[i] = 0x20
	}
	mem.LoadRAM(0x0400, blank)

	test.ExpectSuccess(t, mem.VICWriteRegister(0xD020, 2)) // border
	test.ExpectSuccess(t, mem.VICWriteRegister(0xD021, 6)) // background 0

	surface := &recordingSurface{}
	test.ExpectSuccess(t, v.Refresh(mem, surface))

	test.ExpectEquality(t, true, surface.cleared)
	test.ExpectEquality(t, true, surface.presented)

	// every background cell fill (8x8) must have been painted in palette
	// entry 6; the blank glyph has no set bits, so no foreground pixel is
	// ever drawn on top
	cellFills := 0
	for i, r := range surface.fillRects {
		if r.w == 8 && r.h == 8 {
			cellFills++
			test.ExpectEquality(t, uint8(6), surface.colorAtFill[i])
		} else if r.w == 1 && r.h == 1 {
			t.Fatalf("unexpected foreground pixel fill over a blank glyph: %+v", r)
		}
	}
	test.ExpectEquality(t, 1000, cellFills)
}

func TestClockKeepsRasterStateInRange(t *testing.T) {
	mem := memory.NewBus()
	v := vic.NewVIC()
	test.ExpectSuccess(t, v.Init(mem))

	for i := 0; i < 65*263*3; i++ {
		test.ExpectSuccess(t, v.Clock(mem))
		test.ExpectEquality(t, true, v.CurrLine() < 263)
		test.ExpectEquality(t, true, v.CurrCycle() < 65)
	}
}

func TestClockSyncsRasterRegister(t *testing.T) {
	mem := memory.NewBus()
	v := vic.NewVIC()
	test.ExpectSuccess(t, v.Init(mem))

	for i := 0; i < 65; i++ {
		test.ExpectSuccess(t, v.Clock(mem))
	}

	raster, err := mem.VICReadRegister(0xD012)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, uint8(v.CurrLine()&0xFF), raster)
}

func TestRefreshPaintsSpriteZeroPixel(t *testing.T) {
	mem := memory.NewBus()
	v := vic.NewVIC()
	test.ExpectSuccess(t, v.Init(mem))
	test.ExpectSuccess(t, mem.CIAWrite(memorymap.CIA2PortA, 0x03))

	// video-matrix base after Init is $0400; sprite 0's pointer cell sits at
	// $0400 + $03F8. Point it at block 2 ($0080) and set the top-left pixel
	// of the 24x21 body.
	mem.LoadRAM(0x07F8, []byte{2})
	spriteData := make([]byte, 21*3)
	spriteData[0] = 0x80 // row 0, leftmost column bit
	mem.LoadRAM(0x0080, spriteData)

	test.ExpectSuccess(t, mem.VICWriteRegister(0xD015, 0x01)) // enable sprite 0
	test.ExpectSuccess(t, mem.VICWriteRegister(0xD027, 5))    // sprite 0 color
	test.ExpectSuccess(t, mem.VICWriteRegister(0xD000, 30))   // sprite 0 X
	test.ExpectSuccess(t, mem.VICWriteRegister(0xD001, 60))   // sprite 0 Y

	surface := &recordingSurface{}
	test.ExpectSuccess(t, v.Refresh(mem, surface))

	found := false
	for i, r := range surface.fillRects {
		if r.w == 1 && r.h == 1 && r.x == 38 && r.y == 26 {
			test.ExpectEquality(t, uint8(5), surface.colorAtFill[i])
			found = true
		}
	}
	test.ExpectEquality(t, true, found)
}

func TestRefreshSkipsDisabledSprites(t *testing.T) {
	mem := memory.NewBus()
	v := vic.NewVIC()
	test.ExpectSuccess(t, v.Init(mem))
	test.ExpectSuccess(t, mem.CIAWrite(memorymap.CIA2PortA, 0x03))

	mem.LoadRAM(0x07F8, []byte{2})
	spriteData := make([]byte, 21*3)
	spriteData[0] = 0x80
	mem.LoadRAM(0x0080, spriteData)

	test.ExpectSuccess(t, mem.VICWriteRegister(0xD015, 0x00)) // no sprites enabled
	test.ExpectSuccess(t, mem.VICWriteRegister(0xD000, 30))
	test.ExpectSuccess(t, mem.VICWriteRegister(0xD001, 60))

	surface := &recordingSurface{}
	test.ExpectSuccess(t, v.Refresh(mem, surface))

	for _, r := range surface.fillRects {
		if r.w == 1 && r.h == 1 && r.x == 38 && r.y == 26 {
			t.Fatalf("sprite pixel painted despite being disabled: %+v", r)
		}
	}
}
