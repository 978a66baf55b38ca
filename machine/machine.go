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

// Package machine drives the CPU and VIC-II together: single-threaded,
// cooperative, with no shared state beyond the memory bus passed explicitly
// to every call.
package machine

import (
	"time"

	"github.com/nilclass/c64emu/display"
	"github.com/nilclass/c64emu/hardware/cpu"
	"github.com/nilclass/c64emu/hardware/memory/bus"
	"github.com/nilclass/c64emu/hardware/vic"
	"github.com/nilclass/c64emu/keyboard"
	"github.com/nilclass/c64emu/logger"
)

// FrameBudget is the wall-clock time one batch of CPU/VIC steps is allowed
// to run before the driver polls input and refreshes the display.
const FrameBudget = 15 * time.Millisecond

// Bus is the memory bus view the machine drives the CPU and VIC through.
type Bus interface {
	bus.CPUBus
	bus.VICBus
	SetPressedKeys(keys map[keyboard.Key]bool)
}

// Machine owns the CPU and VIC-II and alternates stepping them against a
// shared bus.
type Machine struct {
	CPU     *cpu.CPU
	VIC     *vic.VIC
	Mem     Bus
	Surface display.Surface

	// FrameBudget overrides the package default when non-zero, mostly for
	// tests that want to bound a single RunFrame call tightly.
	FrameBudget time.Duration
}

// NewMachine wires a CPU and VIC-II driving mem through surface.
func NewMachine(mem Bus, surface display.Surface) *Machine {
	return &Machine{
		CPU:     cpu.NewCPU(),
		VIC:     vic.NewVIC(),
		Mem:     mem,
		Surface: surface,
	}
}

// PollKeys supplies the host's currently-pressed keys at a frame boundary.
type PollKeys func() map[keyboard.Key]bool

// RunFrame runs CPU steps and VIC clocks for up to the frame budget or
// until a breakpoint fires, whichever comes first. If the budget is
// exhausted without a hit, it polls keys, refreshes the VIC into the
// surface and triggers a maskable interrupt before returning. It reports
// hitBreak so the caller (typically a monitor) can drop into its own
// command loop.
func (m *Machine) RunFrame(poll PollKeys) (hitBreak bool, err error) {
	budget := m.FrameBudget
	if budget == 0 {
		budget = FrameBudget
	}
	deadline := time.Now().Add(budget)

	for time.Now().Before(deadline) {
		_, hit, err := m.CPU.SingleStep(m.Mem)
		if err != nil {
			return true, err
		}
		if err := m.VIC.Clock(m.Mem); err != nil {
			return true, err
		}
		if hit {
			return true, nil
		}
	}

	if poll != nil {
		m.Mem.SetPressedKeys(poll())
	}
	if err := m.VIC.Refresh(m.Mem, m.Surface); err != nil {
		return false, err
	}
	if err := m.CPU.TriggerIRQ(m.Mem); err != nil {
		logger.Logf("machine", "triggering IRQ: %v", err)
		return false, err
	}
	return false, nil
}
