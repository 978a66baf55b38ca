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

// Package cpu implements the 6502 found in the Commodore 64. Register logic
// is implemented by the Register type in the registers sub-package; opcode
// metadata lives in the instructions sub-package. This package owns decode,
// dispatch and the arithmetic/flag semantics of every documented opcode.
package cpu

import (
	"fmt"

	"github.com/nilclass/c64emu/hardware/cpu/instructions"
	"github.com/nilclass/c64emu/hardware/cpu/registers"
	"github.com/nilclass/c64emu/hardware/memory/bus"
	"github.com/nilclass/c64emu/hardware/memory/memorymap"
	"github.com/nilclass/c64emu/logger"
)

// InvalidOpcodeError is returned by SingleStep when the byte at PC does not
// name a documented instruction.
type InvalidOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e InvalidOpcodeError) Error() string {
	return fmt.Sprintf("cpu: invalid opcode $%02X at $%04X", e.Opcode, e.PC)
}

// CPU implements the 6502 interpreter. It owns nothing beyond its own
// registers - every memory access goes through the bus.CPUBus passed to
// SingleStep, TriggerIRQ and Reset.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.Status

	// acc8 is scratch storage for the shift/rotate opcodes when they target
	// a memory operand rather than the accumulator: the Register's ASL/LSR/
	// ROL/ROR methods need something to operate on, so the byte read from
	// memory is loaded into acc8, shifted there, then written back out.
	acc8 registers.Register

	hitBreak      bool
	breakpointSet bool
	breakpoint    uint16
}

// NewCPU returns a CPU in its documented power-on state: PC = 0, A = X = Y =
// 0, SP = $FF, ST = $20, break flag clear, breakpoint disabled. Booting a
// real image additionally requires a Reset call once ROM is mapped in.
func NewCPU() *CPU {
	cpu := &CPU{
		SP: registers.NewStackPointer(0xFF),
	}
	cpu.Status.Load(0x20)
	return cpu
}

// Reset loads PC from the reset vector at $FFFC/$FFFD, the way real 6502
// hardware does on power-up or a reset line pulse.
func (cpu *CPU) Reset(mem bus.CPUBus) error {
	addr, err := mem.ReadWord(memorymap.ResetVector)
	if err != nil {
		return err
	}
	cpu.PC.Load(addr)
	return nil
}

// SetBreakpoint arms a single PC-match breakpoint.
func (cpu *CPU) SetBreakpoint(addr uint16) {
	cpu.breakpointSet = true
	cpu.breakpoint = addr
}

// ClearBreakpoint disarms the breakpoint.
func (cpu *CPU) ClearBreakpoint() {
	cpu.breakpointSet = false
}

// Breakpoint returns the armed breakpoint address and whether one is set.
func (cpu *CPU) Breakpoint() (uint16, bool) {
	return cpu.breakpoint, cpu.breakpointSet
}

// SingleStep executes one instruction: fetch, decode, advance PC, execute,
// and reports the declared cycle cost together with whether execution
// should now pause (a BRK was executed, or the breakpoint matches the new
// PC). The one-shot break signal is cleared on every call, win or lose.
func (cpu *CPU) SingleStep(mem bus.CPUBus) (cycles int, hitBreak bool, err error) {
	opcodeByte, err := mem.Read(cpu.PC.Value())
	if err != nil {
		return 0, false, err
	}

	defn, ok := instructions.Lookup(opcodeByte)
	if !ok {
		return 0, false, InvalidOpcodeError{Opcode: opcodeByte, PC: cpu.PC.Value()}
	}

	operand, err := cpu.decode(mem, defn)
	if err != nil {
		return 0, false, err
	}

	cpu.PC.Add(uint16(defn.Bytes))
	cycles = defn.Cycles

	if err := cpu.execute(mem, defn, operand); err != nil {
		return 0, false, err
	}

	hitBreak = cpu.hitBreak || (cpu.breakpointSet && cpu.PC.Value() == cpu.breakpoint)
	cpu.hitBreak = false

	return cycles, hitBreak, nil
}

// TriggerIRQ delivers a maskable interrupt: ignored while the interrupt
// disable flag is set, otherwise pushes PC and ST (with Break forced clear)
// and vectors through $FFFE/$FFFF.
func (cpu *CPU) TriggerIRQ(mem bus.CPUBus) error {
	if cpu.Status.InterruptDisable {
		return nil
	}
	if err := cpu.pushWord(mem, cpu.PC.Value()); err != nil {
		return err
	}
	cpu.Status.Break = false
	if err := cpu.pushByte(mem, cpu.Status.Value()); err != nil {
		return err
	}
	cpu.Status.InterruptDisable = true
	addr, err := mem.ReadWord(memorymap.IRQVector)
	if err != nil {
		return err
	}
	cpu.PC.Load(addr)
	return nil
}

// decode reads whatever extra operand bytes the addressing mode needs -
// using PC+1/PC+2, since PC has not yet been advanced past the instruction
// - and produces the resulting Operand.
func (cpu *CPU) decode(mem bus.CPUBus, defn instructions.Definition) (Operand, error) {
	pc := cpu.PC.Value()

	switch defn.AddressingMode {
	case instructions.Implied:
		return valueOperand(0), nil

	case instructions.Accumulator:
		return accumulatorOperand(), nil

	case instructions.Immediate, instructions.Relative:
		v, err := mem.Read(pc + 1)
		return valueOperand(v), err

	case instructions.Absolute:
		a, err := mem.ReadWord(pc + 1)
		return addressOperand(a), err

	case instructions.AbsoluteX:
		a, err := mem.ReadWord(pc + 1)
		return addressOperand(a + uint16(cpu.X.Value())), err

	case instructions.AbsoluteY:
		a, err := mem.ReadWord(pc + 1)
		return addressOperand(a + uint16(cpu.Y.Value())), err

	case instructions.ZeroPage:
		v, err := mem.Read(pc + 1)
		return addressOperand(uint16(v)), err

	case instructions.ZeroPageX:
		v, err := mem.Read(pc + 1)
		return addressOperand(uint16(v+cpu.X.Value()) & 0x00FF), err

	case instructions.ZeroPageY:
		v, err := mem.Read(pc + 1)
		return addressOperand(uint16(v+cpu.Y.Value()) & 0x00FF), err

	case instructions.Indirect:
		ptr, err := mem.ReadWord(pc + 1)
		if err != nil {
			return Operand{}, err
		}
		a, err := mem.ReadWord(ptr)
		return addressOperand(a), err

	case instructions.IndexedIndirect:
		zp, err := mem.Read(pc + 1)
		if err != nil {
			return Operand{}, err
		}
		a, err := cpu.readZeroPageWord(mem, zp+cpu.X.Value())
		return addressOperand(a), err

	case instructions.IndirectIndexed:
		zp, err := mem.Read(pc + 1)
		if err != nil {
			return Operand{}, err
		}
		base, err := cpu.readZeroPageWord(mem, zp)
		if err != nil {
			return Operand{}, err
		}
		return addressOperand(base + uint16(cpu.Y.Value())), nil
	}

	return Operand{}, fmt.Errorf("cpu: unhandled addressing mode %s", defn.AddressingMode)
}

// readZeroPageWord reads a little-endian word whose two bytes both live in
// the zero page - the high byte wraps from $FF back to $00 rather than
// spilling into page one, as the indirect addressing modes require.
func (cpu *CPU) readZeroPageWord(mem bus.CPUBus, zp uint8) (uint16, error) {
	lo, err := mem.Read(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := mem.Read(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (cpu *CPU) pushByte(mem bus.CPUBus, v uint8) error {
	if err := mem.Write(cpu.SP.Address(), v); err != nil {
		return err
	}
	cpu.SP.Subtract(1, true)
	return nil
}

func (cpu *CPU) popByte(mem bus.CPUBus) (uint8, error) {
	cpu.SP.Add(1, false)
	return mem.Read(cpu.SP.Address())
}

// pushWord pushes addr high-byte-first, so a later pair of pops recovers it
// low byte first.
func (cpu *CPU) pushWord(mem bus.CPUBus, addr uint16) error {
	if err := cpu.pushByte(mem, uint8(addr>>8)); err != nil {
		return err
	}
	return cpu.pushByte(mem, uint8(addr))
}

func (cpu *CPU) popWord(mem bus.CPUBus) (uint16, error) {
	lo, err := cpu.popByte(mem)
	if err != nil {
		return 0, err
	}
	hi, err := cpu.popByte(mem)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func setZS(sr *registers.Status, v uint8) {
	sr.Zero = v == 0
	sr.Sign = v&0x80 != 0
}

// execute runs the opcode's semantics. val is the operand's source-as-byte
// projection, addr its target-as-word projection, fetched once up front the
// way the reference interpreter does it - most opcodes only need one or the
// other.
func (cpu *CPU) execute(mem bus.CPUBus, defn instructions.Definition, operand Operand) error {
	val, err := operand.sourceByte(cpu, mem)
	if err != nil {
		return err
	}
	addr := operand.targetWord()

	switch defn.Mnemonic {
	case "ADC":
		cpu.adc(val)
	case "AND":
		cpu.A.AND(val)
		setZS(&cpu.Status, cpu.A.Value())
	case "ASL":
		return cpu.shift(mem, operand, val, (*registers.Register).ASL)
	case "BCC":
		cpu.branch(!cpu.Status.Carry, val)
	case "BCS":
		cpu.branch(cpu.Status.Carry, val)
	case "BEQ":
		cpu.branch(cpu.Status.Zero, val)
	case "BNE":
		cpu.branch(!cpu.Status.Zero, val)
	case "BMI":
		cpu.branch(cpu.Status.Sign, val)
	case "BPL":
		cpu.branch(!cpu.Status.Sign, val)
	case "BVC":
		cpu.branch(!cpu.Status.Overflow, val)
	case "BVS":
		cpu.branch(cpu.Status.Overflow, val)
	case "BIT":
		cpu.Status.Sign = val&0x80 != 0
		cpu.Status.Overflow = val&0x40 != 0
		cpu.Status.Zero = cpu.A.Value()&val == 0
	case "BRK":
		return cpu.brk(mem)
	case "CLC":
		cpu.Status.Carry = false
	case "CLD":
		cpu.Status.DecimalMode = false
	case "CLI":
		cpu.Status.InterruptDisable = false
	case "CLV":
		cpu.Status.Overflow = false
	case "CMP":
		cpu.compare(cpu.A.Value(), val)
	case "CPX":
		cpu.compare(cpu.X.Value(), val)
	case "CPY":
		cpu.compare(cpu.Y.Value(), val)
	case "DEC":
		v := val - 1
		setZS(&cpu.Status, v)
		return mem.Write(addr, v)
	case "DEX":
		cpu.X.Load(cpu.X.Value() - 1)
		setZS(&cpu.Status, cpu.X.Value())
	case "DEY":
		cpu.Y.Load(cpu.Y.Value() - 1)
		setZS(&cpu.Status, cpu.Y.Value())
	case "EOR":
		cpu.A.EOR(val)
		setZS(&cpu.Status, cpu.A.Value())
	case "INC":
		v := val + 1
		setZS(&cpu.Status, v)
		return mem.Write(addr, v)
	case "INX":
		cpu.X.Load(cpu.X.Value() + 1)
		setZS(&cpu.Status, cpu.X.Value())
	case "INY":
		cpu.Y.Load(cpu.Y.Value() + 1)
		setZS(&cpu.Status, cpu.Y.Value())
	case "JMP":
		cpu.PC.Load(addr)
	case "JSR":
		if err := cpu.pushWord(mem, cpu.PC.Value()-1); err != nil {
			return err
		}
		cpu.PC.Load(addr)
	case "LDA":
		cpu.A.Load(val)
		setZS(&cpu.Status, val)
	case "LDX":
		cpu.X.Load(val)
		setZS(&cpu.Status, val)
	case "LDY":
		cpu.Y.Load(val)
		setZS(&cpu.Status, val)
	case "LSR":
		return cpu.shift(mem, operand, val, (*registers.Register).LSR)
	case "NOP":
	case "ORA":
		cpu.A.ORA(val)
		setZS(&cpu.Status, cpu.A.Value())
	case "PHA":
		return cpu.pushByte(mem, cpu.A.Value())
	case "PHP":
		return cpu.pushByte(mem, cpu.Status.Value()|0x10)
	case "PLA":
		v, err := cpu.popByte(mem)
		if err != nil {
			return err
		}
		cpu.A.Load(v)
		setZS(&cpu.Status, v)
	case "PLP":
		v, err := cpu.popByte(mem)
		if err != nil {
			return err
		}
		// the B bit PHP forces onto the pushed byte is not restored: PLP
		// leaves the Break flag as it was
		brk := cpu.Status.Break
		cpu.Status.Load(v)
		cpu.Status.Break = brk
	case "ROL":
		carryIn := cpu.Status.Carry
		return cpu.shift(mem, operand, val, func(r *registers.Register) bool {
			return r.ROL(carryIn)
		})
	case "ROR":
		carryIn := cpu.Status.Carry
		return cpu.shift(mem, operand, val, func(r *registers.Register) bool {
			return r.ROR(carryIn)
		})
	case "RTI":
		v, err := cpu.popByte(mem)
		if err != nil {
			return err
		}
		cpu.Status.Load(v)
		pc, err := cpu.popWord(mem)
		if err != nil {
			return err
		}
		cpu.PC.Load(pc)
	case "RTS":
		pc, err := cpu.popWord(mem)
		if err != nil {
			return err
		}
		cpu.PC.Load(pc + 1)
	case "SBC":
		cpu.sbc(val)
	case "SEC":
		cpu.Status.Carry = true
	case "SED":
		cpu.Status.DecimalMode = true
	case "SEI":
		cpu.Status.InterruptDisable = true
	case "STA":
		return mem.Write(addr, cpu.A.Value())
	case "STX":
		return mem.Write(addr, cpu.X.Value())
	case "STY":
		return mem.Write(addr, cpu.Y.Value())
	case "TAX":
		cpu.X.Load(cpu.A.Value())
		setZS(&cpu.Status, cpu.X.Value())
	case "TAY":
		cpu.Y.Load(cpu.A.Value())
		setZS(&cpu.Status, cpu.Y.Value())
	case "TSX":
		cpu.X.Load(cpu.SP.Value())
		setZS(&cpu.Status, cpu.X.Value())
	case "TXA":
		cpu.A.Load(cpu.X.Value())
		setZS(&cpu.Status, cpu.A.Value())
	case "TYA":
		cpu.A.Load(cpu.Y.Value())
		setZS(&cpu.Status, cpu.A.Value())
	case "TXS":
		cpu.SP.Load(cpu.X.Value())
	default:
		logger.Logf("cpu", "unhandled opcode %s ($%02X)", defn.Mnemonic, defn.OpCode)
		return fmt.Errorf("cpu: unhandled opcode %s ($%02X)", defn.Mnemonic, defn.OpCode)
	}
	return nil
}

// shift loads val into the scratch register acc8 and applies one of the
// Register type's own ASL/LSR/ROL/ROR methods to it, then sets Carry from
// the bit the method reports, sets Z/S on the result, and writes the result
// back to the operand (accumulator or memory).
func (cpu *CPU) shift(mem bus.CPUBus, operand Operand, val uint8, fn func(*registers.Register) bool) error {
	cpu.acc8.Load(val)
	carry := fn(&cpu.acc8)
	cpu.Status.Carry = carry
	setZS(&cpu.Status, cpu.acc8.Value())
	return operand.writeBack(cpu, mem, cpu.acc8.Value())
}

func (cpu *CPU) branch(taken bool, offset uint8) {
	if !taken {
		return
	}
	disp := int16(int8(offset))
	cpu.PC.Load(uint16(int32(cpu.PC.Value()) + int32(disp)))
}

func (cpu *CPU) compare(reg, val uint8) {
	result := int16(reg) - int16(val)
	cpu.Status.Carry = reg >= val
	setZS(&cpu.Status, uint8(result))
}

// adc implements binary and BCD addition per the documented NMOS 6502
// behavior: the binary path matches the textbook overflow formula; the
// decimal path performs the half-carry/full-carry nibble correction with Z
// taken from the uncorrected low byte and S/V from the once-corrected byte.
func (cpu *CPU) adc(val uint8) {
	a := cpu.A.Value()
	carry := uint16(0)
	if cpu.Status.Carry {
		carry = 1
	}
	result := uint16(a) + uint16(val) + carry

	if cpu.Status.DecimalMode {
		cpu.Status.Zero = uint8(result) == 0
		if (a&0xF)+(val&0xF)+uint8(carry) > 9 {
			result += 6
		}
		cpu.Status.Sign = uint8(result)&0x80 != 0
		cpu.Status.Overflow = (a^val)&0x80 == 0 && (a^uint8(result))&0x80 != 0
		if result > 0x99 {
			result += 0x60
		}
		cpu.Status.Carry = result > 0x99
	} else {
		setZS(&cpu.Status, uint8(result))
		cpu.Status.Carry = result > 0xFF
		cpu.Status.Overflow = (a^val)&0x80 == 0 && (a^uint8(result))&0x80 != 0
	}

	cpu.A.Load(uint8(result))
}

// sbc mirrors adc: the borrow-in is (1 - Carry), the decimal correction
// subtracts 6 on a half-borrow and 0x60 on a full borrow.
func (cpu *CPU) sbc(val uint8) {
	a := cpu.A.Value()
	borrow := int16(0)
	if !cpu.Status.Carry {
		borrow = 1
	}
	result := int16(a) - int16(val) - borrow

	setZS(&cpu.Status, uint8(result))
	cpu.Status.Overflow = (a^uint8(result))&0x80 != 0 && (a^val)&0x80 != 0

	if cpu.Status.DecimalMode {
		if (int16(a&0xF) - borrow) < int16(val&0xF) {
			result -= 6
		}
		if uint16(result) > 0x99 {
			result -= 0x60
		}
	}

	cpu.Status.Carry = uint16(result) < 0x100
	cpu.A.Load(uint8(result))
}

func (cpu *CPU) brk(mem bus.CPUBus) error {
	cpu.PC.Add(1)
	if err := cpu.pushWord(mem, cpu.PC.Value()); err != nil {
		return err
	}
	cpu.Status.Break = true
	if err := cpu.pushByte(mem, cpu.Status.Value()); err != nil {
		return err
	}
	cpu.Status.InterruptDisable = true
	addr, err := mem.ReadWord(memorymap.IRQVector)
	if err != nil {
		return err
	}
	cpu.PC.Load(addr)
	cpu.hitBreak = true
	return nil
}

// String formats the registers for the monitor's "r" command: each
// register in hex, and the status byte both as a raw binary value and as
// its flag letters (S V - B D I Z C), with an unset flag shown as a dot.
func (cpu *CPU) String() string {
	st := cpu.Status.Value()
	letters := [8]byte{'S', 'V', '-', 'B', 'D', 'I', 'Z', 'C'}
	flags := make([]byte, 8)
	for i := 0; i < 8; i++ {
		bit := uint8(1) << (7 - i)
		if st&bit == 0 {
			flags[i] = '.'
		} else {
			flags[i] = letters[i]
		}
	}
	return fmt.Sprintf("PC:$%04X A:$%02X X:$%02X Y:$%02X SP:$%02X ST:%08b [%s]",
		cpu.PC.Value(), cpu.A.Value(), cpu.X.Value(), cpu.Y.Value(), cpu.SP.Value(), st, flags)
}
