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

package machine_test

import (
	"testing"
	"time"

	"github.com/nilclass/c64emu/hardware/memory"
	"github.com/nilclass/c64emu/keyboard"
	"github.com/nilclass/c64emu/machine"
	"github.com/nilclass/c64emu/test"
)

type noopSurface struct {
	presented int
}

func (s *noopSurface) SetDrawColor(uint8)      {}
func (s *noopSurface) Clear()                  {}
func (s *noopSurface) FillRect(x, y, w, h int) {}
func (s *noopSurface) Present()                { s.presented++ }

func TestRunFrameStopsAtBreakpoint(t *testing.T) {
	mem := memory.NewBus()
	mem.LoadRAM(0x0200, []byte{0xEA, 0xEA, 0x00}) // NOP ; NOP ; BRK

	surface := &noopSurface{}
	m := machine.NewMachine(mem, surface)
	m.CPU.PC.Load(0x0200)
	m.FrameBudget = time.Second // generous, breakpoint should stop us first

	hit, err := m.RunFrame(nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, true, hit)
	// BRK vectors through $FFFE/$FFFF, which reads zero with no KERNAL loaded
	test.ExpectEquality(t, uint16(0x0000), m.CPU.PC.Value())

	// the budget wasn't exhausted, so no refresh/poll should have happened
	test.ExpectEquality(t, 0, surface.presented)
}

func TestRunFrameRefreshesAndPollsOnBudgetExpiry(t *testing.T) {
	mem := memory.NewBus()
	mem.LoadRAM(0x0200, []byte{0xEA}) // single NOP, then loop forever via JMP back

	// JMP $0200 after the NOP, so the CPU never hits a BRK and the loop
	// runs until the frame budget (not a breakpoint) ends it
	mem.LoadRAM(0x0201, []byte{0x4C, 0x00, 0x02})

	surface := &noopSurface{}
	m := machine.NewMachine(mem, surface)
	m.CPU.PC.Load(0x0200)
	m.FrameBudget = time.Millisecond

	polled := false
	hit, err := m.RunFrame(func() map[keyboard.Key]bool {
		polled = true
		return map[keyboard.Key]bool{keyboard.Space: true}
	})

	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, false, hit)
	test.ExpectEquality(t, true, polled)
	test.ExpectEquality(t, 1, surface.presented)
}
