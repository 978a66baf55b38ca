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

package monitor_test

import (
	"strings"
	"testing"

	"github.com/nilclass/c64emu/hardware/memory"
	"github.com/nilclass/c64emu/machine"
	"github.com/nilclass/c64emu/monitor"
	"github.com/nilclass/c64emu/test"
)

type noopSurface struct{}

func (noopSurface) SetDrawColor(uint8)      {}
func (noopSurface) Clear()                  {}
func (noopSurface) FillRect(x, y, w, h int) {}
func (noopSurface) Present()                {}

func TestStepAndRegisterDump(t *testing.T) {
	mem := memory.NewBus()
	mem.LoadRAM(0x0200, []byte{0xA9, 0x2A, 0x00}) // LDA #$2A ; BRK

	m := machine.NewMachine(mem, noopSurface{})
	m.CPU.PC.Load(0x0200)

	in := strings.NewReader("s\nx\n")
	out := &strings.Builder{}
	mon := monitor.New(m, mem, nil, in, out)

	code := mon.Run(true)

	test.ExpectEquality(t, 0, code)
	test.ExpectEquality(t, true, strings.Contains(out.String(), "Stopped at PC: $0202"))
	test.ExpectEquality(t, true, strings.Contains(out.String(), "A:$2A"))
}

func TestSetPCAndBreakpoint(t *testing.T) {
	mem := memory.NewBus()
	mem.LoadRAM(0x0200, []byte{0xEA}) // NOP

	m := machine.NewMachine(mem, noopSurface{})
	m.CPU.PC.Load(0x0000)

	in := strings.NewReader("p 0200\nb 0201\nx\n")
	out := &strings.Builder{}
	mon := monitor.New(m, mem, nil, in, out)

	code := mon.Run(true)
	test.ExpectEquality(t, 0, code)
	test.ExpectEquality(t, uint16(0x0200), m.CPU.PC.Value())

	bp, set := m.CPU.Breakpoint()
	test.ExpectEquality(t, true, set)
	test.ExpectEquality(t, uint16(0x0201), bp)
}

func TestMemoryDumpFormat(t *testing.T) {
	mem := memory.NewBus()
	mem.LoadRAM(0x1000, []byte("HELLO, WORLD!"))

	m := machine.NewMachine(mem, noopSurface{})

	in := strings.NewReader("m 1000\nx\n")
	out := &strings.Builder{}
	mon := monitor.New(m, mem, nil, in, out)

	code := mon.Run(true)
	test.ExpectEquality(t, 0, code)
	test.ExpectEquality(t, true, strings.Contains(out.String(), "1000: 48 45 4C 4C 4F"))
	test.ExpectEquality(t, true, strings.Contains(out.String(), "HELLO"))
}
