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

// Package monitor implements the line-oriented debug REPL: single-step,
// go, register and memory dumps, PC/breakpoint setting and PRG loading.
package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nilclass/c64emu/cartridge"
	"github.com/nilclass/c64emu/disassembly"
	"github.com/nilclass/c64emu/hardware/memory/bus"
	"github.com/nilclass/c64emu/machine"
)

// Monitor drives a machine.Machine under operator control. Mem is a
// separate DebugBus view of the same underlying bus the machine runs
// against, used for peeking/poking without coupling to CPUBus's error
// semantics.
type Monitor struct {
	Machine *machine.Machine
	Mem     bus.DebugBus
	Poll    machine.PollKeys

	in  *bufio.Scanner
	out io.Writer
}

// New returns a Monitor reading commands from in and writing output to out.
func New(m *machine.Machine, mem bus.DebugBus, poll machine.PollKeys, in io.Reader, out io.Writer) *Monitor {
	return &Monitor{
		Machine: m,
		Mem:     mem,
		Poll:    poll,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run drives the machine until the operator exits with "x" or input runs
// out, and returns the process exit code, which is 0 on both paths. An
// error from a running frame (an invalid opcode, say) does not end the run:
// it is printed and the monitor drops into its break-state prompt.
func (mon *Monitor) Run(breakOnStart bool) int {
	breakSet := breakOnStart

	for {
		if !breakSet {
			hit, err := mon.Machine.RunFrame(mon.Poll)
			if err != nil {
				fmt.Fprintf(mon.out, "single step error: %v\n", err)
				breakSet = true
				continue
			}
			if !hit {
				continue
			}
			breakSet = true
		}

		mon.printContext()
		fmt.Fprint(mon.out, "\nCommand (? for help) : ")

		if !mon.in.Scan() {
			return 0
		}

		quit, resumed := mon.dispatch(strings.TrimSpace(mon.in.Text()))
		if quit {
			return 0
		}
		breakSet = !resumed
	}
}

// printContext disassembles the next three instructions from the CPU's
// current PC, the way the break-state listing does.
func (mon *Monitor) printContext() {
	fmt.Fprintln(mon.out)
	ip := mon.Machine.CPU.PC.Value()
	for i := 0; i < 3; i++ {
		text, next, err := disassembly.Step(mon.Mem, ip)
		if err != nil {
			fmt.Fprintf(mon.out, "error: %v\n", err)
			break
		}
		if i == 0 {
			fmt.Fprintf(mon.out, "* %s\n", text)
		} else {
			fmt.Fprintf(mon.out, "  %s\n", text)
		}
		ip = next
	}
}

// dispatch runs one command line, returning whether the operator asked to
// exit and whether the machine should resume running (the "g" command).
func (mon *Monitor) dispatch(line string) (quit, resume bool) {
	fields := strings.Fields(line)
	var cmd string
	var arg string
	if len(fields) > 0 {
		cmd = fields[0]
	}
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "?":
		mon.help()
	case "x":
		return true, false
	case "g":
		return false, true
	case "s", "":
		cycles, _, err := mon.Machine.CPU.SingleStep(mon.Machine.Mem)
		if err != nil {
			fmt.Fprintf(mon.out, "single step error: %v\n", err)
			return false, false
		}
		fmt.Fprintf(mon.out, "Stopped at PC: $%04X (cycles: %d)\n", mon.Machine.CPU.PC.Value(), cycles)
		fmt.Fprintln(mon.out, mon.Machine.CPU)
	case "r":
		fmt.Fprintln(mon.out, mon.Machine.CPU)
	case "m":
		mon.dumpMemory(arg)
	case "p":
		mon.setPC(arg)
	case "b":
		mon.setBreakpoint(arg)
	case "l":
		if arg == "" {
			mon.listFiles()
		} else {
			mon.loadPRG(arg)
		}
	}
	return false, false
}

func (mon *Monitor) help() {
	fmt.Fprintln(mon.out, "Commands:")
	fmt.Fprintln(mon.out, "(s)tep        - execute next instruction (single step)")
	fmt.Fprintln(mon.out, "(g)o          - execute till next breakpoint")
	fmt.Fprintln(mon.out, "(r)eg         - dump registers")
	fmt.Fprintln(mon.out, "(m)em [addr]  - dump memory at addr")
	fmt.Fprintln(mon.out, "(p)c [addr]   - set the PC to addr")
	fmt.Fprintln(mon.out, "(b)p [addr]   - set breakpoint at addr")
	fmt.Fprintln(mon.out, "(l)oad [file] - load a PRG file")
	fmt.Fprintln(mon.out, "e(x)it        - exit program")
}

func parseHexAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("monitor: invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func (mon *Monitor) dumpMemory(arg string) {
	addr, err := parseHexAddr(arg)
	if err != nil {
		fmt.Fprintln(mon.out, err)
		return
	}
	for row := 0; row < 3; row++ {
		mon.dumpRow(addr)
		addr += 16
	}
}

func (mon *Monitor) dumpRow(addr uint16) {
	var line strings.Builder
	var ascii strings.Builder
	fmt.Fprintf(&line, "%04X: ", addr)
	for i := uint16(0); i < 16; i++ {
		b, err := mon.Mem.Peek(addr + i)
		if err != nil {
			fmt.Fprint(&line, "   ")
			ascii.WriteByte('.')
			continue
		}
		fmt.Fprintf(&line, "%02X ", b)
		if b >= 0x20 && b < 0x7F {
			ascii.WriteByte(b)
		} else {
			ascii.WriteByte('.')
		}
	}
	fmt.Fprintf(mon.out, "%s %s\n", line.String(), ascii.String())
}

func (mon *Monitor) setPC(arg string) {
	addr, err := parseHexAddr(arg)
	if err != nil {
		fmt.Fprintln(mon.out, err)
		return
	}
	mon.Machine.CPU.PC.Load(addr)
}

func (mon *Monitor) setBreakpoint(arg string) {
	addr, err := parseHexAddr(arg)
	if err != nil {
		fmt.Fprintln(mon.out, err)
		return
	}
	mon.Machine.CPU.SetBreakpoint(addr)
}

func (mon *Monitor) listFiles() {
	entries, err := os.ReadDir(".")
	if err != nil {
		fmt.Fprintf(mon.out, "listing directory: %v\n", err)
		return
	}
	for _, e := range entries {
		fmt.Fprintln(mon.out, e.Name())
	}
}

func (mon *Monitor) loadPRG(filename string) {
	fmt.Fprintf(mon.out, "Loading: %s\n", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(mon.out, "loading %s: %v\n", filename, err)
		return
	}
	if err := cartridge.LoadPRG(mon.Machine.Mem, data); err != nil {
		fmt.Fprintln(mon.out, err)
		return
	}
	fmt.Fprintf(mon.out, "Load complete (%d bytes)\n", len(data)-2)
}
