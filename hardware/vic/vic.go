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

// Package vic implements the VIC-II video controller: raster clocking and
// the per-frame paint of text, bitmap and sprite graphics into a host
// display.Surface. The VIC never touches pixels itself; Refresh drives the
// surface through its four-call API.
package vic

import (
	"github.com/nilclass/c64emu/display"
	"github.com/nilclass/c64emu/hardware/memory/bus"
)

// register addresses, all within the VIC's mirror of the I/O page.
const (
	regSprite0X     = 0xD000 // $D000 + 2n = sprite n X, +1 = sprite n Y
	regSpriteXMSB   = 0xD010
	regScrolY       = 0xD011
	regRaster       = 0xD012
	regSpriteEnable = 0xD015
	regScrolX       = 0xD016
	regMemory       = 0xD018
	regBorderColor  = 0xD020
	regBackground0  = 0xD021
	regBackground1  = 0xD022
	regBackground2  = 0xD023
	regSpriteColor  = 0xD027
)

const (
	spritePtrOffset = 0x03F8
	spriteXOffset   = 24
	spriteYOffset   = 50
)

// VIC holds the raster clock state; everything else (registers, video
// matrix, bitmaps, sprites, color RAM) lives behind the VICBus it is handed
// on every call.
type VIC struct {
	cyclesPerLine uint16
	maxLines      uint16
	currLine      uint16
	currCycle     uint16
}

// NewVIC returns a VIC with NTSC raster timing: 65 dot-cycles per line, 263
// lines per frame.
func NewVIC() *VIC {
	return &VIC{
		cyclesPerLine: 65,
		maxLines:      263,
	}
}

// CurrLine is the raster line the VIC is currently clocking, in [0, 263).
func (v *VIC) CurrLine() uint16 { return v.currLine }

// CurrCycle is the dot-cycle within the current line, in [0, 65).
func (v *VIC) CurrCycle() uint16 { return v.currCycle }

// Init sets the video-matrix/char-ROM base register and the display-enable
// bit to their power-on values.
func (v *VIC) Init(mem bus.VICBus) error {
	if err := mem.VICWriteRegister(regMemory, 0x14); err != nil {
		return err
	}
	return mem.VICWriteRegister(regScrolX, 0x08)
}

// Clock advances the raster state by one dot-cycle, keeping $D012 and the
// MSB of $D011 synchronized with the current line the way the Kernal's
// init routine expects.
func (v *VIC) Clock(mem bus.VICBus) error {
	v.currCycle = (v.currCycle + 1) % v.cyclesPerLine
	if v.currCycle == 0 {
		v.currLine = (v.currLine + 1) % v.maxLines
	}

	if v.currCycle == 0 {
		if err := mem.VICWriteRegister(regRaster, uint8(v.currLine&0xFF)); err != nil {
			return err
		}
		b, err := mem.VICReadRegister(regScrolY)
		if err != nil {
			return err
		}
		b &^= 0x80
		if v.currLine > 255 {
			b |= 0x80
		}
		if err := mem.VICWriteRegister(regScrolY, b); err != nil {
			return err
		}
	}
	return nil
}

// Refresh paints one complete frame into surface.
func (v *VIC) Refresh(mem bus.VICBus, surface display.Surface) error {
	border, err := mem.VICReadRegister(regBorderColor)
	if err != nil {
		return err
	}
	surface.SetDrawColor(border & 0x0F)
	surface.Clear()

	bg0, err := mem.VICReadRegister(regBackground0)
	if err != nil {
		return err
	}
	surface.SetDrawColor(bg0 & 0x0F)
	surface.FillRect(display.BorderWidth, display.BorderHeight, display.ViewableWidth, display.ViewableHeight)

	scroly, err := mem.VICReadRegister(regScrolY)
	if err != nil {
		return err
	}

	if scroly&0x20 != 0 {
		if err := v.drawBitmap(mem, surface); err != nil {
			return err
		}
	} else {
		if err := v.drawText(mem, surface); err != nil {
			return err
		}
	}

	if err := v.drawSprites(mem, surface); err != nil {
		return err
	}

	surface.Present()
	return nil
}

func (v *VIC) drawText(mem bus.VICBus, surface display.Surface) error {
	memReg, err := mem.VICReadRegister(regMemory)
	if err != nil {
		return err
	}
	vmBase := uint16(memReg>>4) * 1024
	charBase := uint16((memReg&0x0E)>>1) * 2048

	scrolx, err := mem.VICReadRegister(regScrolX)
	if err != nil {
		return err
	}
	scroly, err := mem.VICReadRegister(regScrolY)
	if err != nil {
		return err
	}
	multiColor := scrolx&0x10 != 0
	extendedColor := scroly&0x40 != 0

	for row := 0; row < 25; row++ {
		for col := 0; col < 40; col++ {
			chIndex := vmBase + uint16(col) + uint16(row*40)
			ch, fg, err := mem.VICReadVideoMatrix(chIndex)
			if err != nil {
				return err
			}
			charStart := charBase + uint16(ch)*8

			var bg uint8
			if extendedColor {
				bgIndex := regBackground0 + uint16(ch/64)
				bg, err = mem.VICReadRegister(bgIndex)
				if err != nil {
					return err
				}
			} else {
				bg, err = mem.VICReadRegister(regBackground0)
				if err != nil {
					return err
				}
			}

			if multiColor && fg >= 8 {
				bg1, err := mem.VICReadRegister(regBackground1)
				if err != nil {
					return err
				}
				bg2, err := mem.VICReadRegister(regBackground2)
				if err != nil {
					return err
				}
				if err := v.drawCharMulticolor(mem, surface, row, col, charStart, bg&0x0F, bg1&0x0F, bg2&0x0F, fg&0x07); err != nil {
					return err
				}
			} else {
				if err := v.drawChar(mem, surface, row, col, charStart, bg&0x0F, fg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (v *VIC) drawBitmap(mem bus.VICBus, surface display.Surface) error {
	memReg, err := mem.VICReadRegister(regMemory)
	if err != nil {
		return err
	}
	bitmapBase := uint16(memReg&0x08) * 1024
	colorBase := uint16(memReg>>4) * 1024

	scrolx, err := mem.VICReadRegister(regScrolX)
	if err != nil {
		return err
	}
	multiColor := scrolx&0x10 != 0

	for row := 0; row < 25; row++ {
		for col := 0; col < 40; col++ {
			charStart := bitmapBase + uint16(col*8) + uint16(row*40*8)
			cb, cmem, err := mem.VICReadVideoMatrix(colorBase + uint16(col) + uint16(row*40))
			if err != nil {
				return err
			}
			bg := cb & 0x0F
			fg := cb >> 4

			if multiColor {
				bg0, err := mem.VICReadRegister(regBackground0)
				if err != nil {
					return err
				}
				if err := v.drawCharMulticolor(mem, surface, row, col, charStart, bg0&0x0F, cb>>4, cb&0x0F, cmem&0x0F); err != nil {
					return err
				}
			} else {
				if err := v.drawChar(mem, surface, row, col, charStart, bg, fg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// drawChar paints a standard 1-bpp 8x8 character cell: a background fill
// followed by one pixel per set bit, MSB first, in the foreground color.
func (v *VIC) drawChar(mem bus.VICBus, surface display.Surface, row, col int, charStart uint16, bg, fg uint8) error {
	scrX := display.BorderWidth + col*8
	scrY := display.BorderHeight + row*8

	surface.SetDrawColor(bg % 16)
	surface.FillRect(scrX, scrY, 8, 8)

	surface.SetDrawColor(fg % 16)
	for y := 0; y < 8; y++ {
		b, err := mem.VICReadByte(charStart + uint16(y))
		if err != nil {
			return err
		}
		for bit := 0; bit < 8; bit++ {
			if b&(1<<(7-bit)) != 0 {
				surface.FillRect(scrX+bit, scrY+y, 1, 1)
			}
		}
	}
	return nil
}

// drawCharMulticolor paints an 8x8 cell as four 2-bit-wide, 2-pixel columns
// per row, selecting one of (c0, c1, c2, c3) for each pair of bits.
func (v *VIC) drawCharMulticolor(mem bus.VICBus, surface display.Surface, row, col int, charStart uint16, c0, c1, c2, c3 uint8) error {
	scrX := display.BorderWidth + col*8
	scrY := display.BorderHeight + row*8
	colors := [4]uint8{c0, c1, c2, c3}

	for y := 0; y < 8; y++ {
		b, err := mem.VICReadByte(charStart + uint16(y))
		if err != nil {
			return err
		}
		for pair := 0; pair < 4; pair++ {
			m := (b >> (6 - pair*2)) & 0x03
			surface.SetDrawColor(colors[m] % 16)
			surface.FillRect(scrX+pair*2, scrY+y, 2, 1)
		}
	}
	return nil
}

func (v *VIC) drawSprites(mem bus.VICBus, surface display.Surface) error {
	memReg, err := mem.VICReadRegister(regMemory)
	if err != nil {
		return err
	}
	vmBase := uint16(memReg>>4) * 1024
	enabled, err := mem.VICReadRegister(regSpriteEnable)
	if err != nil {
		return err
	}
	xMSB, err := mem.VICReadRegister(regSpriteXMSB)
	if err != nil {
		return err
	}

	for n := uint16(0); n < 8; n++ {
		if enabled&(1<<n) == 0 {
			continue
		}

		ptr, err := mem.VICReadByte(vmBase + spritePtrOffset + n)
		if err != nil {
			return err
		}
		spriteAddr := uint16(ptr) * 64

		color, err := mem.VICReadRegister(regSpriteColor + n)
		if err != nil {
			return err
		}

		x, err := mem.VICReadRegister(regSprite0X + n*2)
		if err != nil {
			return err
		}
		spriteX := uint16(x)
		if xMSB&(1<<n) != 0 {
			spriteX |= 0x100
		}

		spriteY, err := mem.VICReadRegister(regSprite0X + n*2 + 1)
		if err != nil {
			return err
		}

		surface.SetDrawColor(color % 16)
		if err := v.drawSprite(mem, surface, spriteAddr, spriteX, spriteY); err != nil {
			return err
		}
	}
	return nil
}

// drawSprite paints a 24x21 hardware sprite: 21 rows of three bytes, bits
// MSB-first, positioned relative to the border origin.
func (v *VIC) drawSprite(mem bus.VICBus, surface display.Surface, addr uint16, x uint16, y uint8) error {
	for row := uint16(0); row < 21; row++ {
		for col := uint16(0); col < 3; col++ {
			b, err := mem.VICReadByte(addr + row*3 + col)
			if err != nil {
				return err
			}
			for bit := uint16(0); bit < 8; bit++ {
				if b&(1<<(7-bit)) == 0 {
					continue
				}
				scrX := display.BorderWidth + int(x) + int(col*8) + int(bit) - spriteXOffset
				scrY := display.BorderHeight + int(y) + int(row) - spriteYOffset
				surface.FillRect(scrX, scrY, 1, 1)
			}
		}
	}
	return nil
}
