// Package cpu implements the 6502-derived 2A03 CPU used by the NES: all
// 151 official opcodes plus the commonly emulated illegal opcodes, exact
// per-instruction cycle accounting, and NMI/IRQ/RESET/BRK delivery.
package cpu

// AddressingMode names one of the 6502's operand-fetch strategies.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase   = 0x0100
	zeroPageMsk = 0x00FF
	pageMask    = 0xFF00
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Bus is the memory interface the CPU executes against. The scheduler
// wires the system bus in; the CPU never knows about PPU/APU/mapper
// specifics.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// CPU holds the full state of one 2A03 core: registers, flags (kept as
// bools rather than a packed byte — see GetStatusByte/SetStatusByte for
// the bit-5 "unused flag" convention the status byte itself needs),
// cycle/stall counters and the two interrupt lines.
type CPU struct {
	PC uint16
	A, X, Y, SP uint8

	C, Z, I, D, B, V, N bool

	bus Bus

	Cycles uint64
	Stall  uint64

	nmiPrevious bool
	nmiPending  bool
	irqLine     bool
}

// New creates a CPU wired to bus. Call Reset before stepping.
func New(bus Bus) *CPU {
	return &CPU{bus: bus, SP: 0xFD}
}

// Reset performs the 6502 reset sequence: 5 dummy bus reads followed by a
// 2-cycle vector fetch from $FFFC/$FFFD, 7 cycles total.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.C, c.Z, c.D, c.V, c.N = false, false, false, false, false
	c.I = true
	c.B = true

	for i := 0; i < 5; i++ {
		c.bus.Read(c.PC)
		c.Cycles++
	}
	lo := uint16(c.bus.Read(resetVector))
	hi := uint16(c.bus.Read(resetVector + 1))
	c.PC = hi<<8 | lo
	c.Cycles += 2
}

// SetNMI raises or lowers the NMI line. NMI is edge-triggered: only a
// high transition latches a pending interrupt.
func (c *CPU) SetNMI(state bool) {
	if state && !c.nmiPrevious {
		c.nmiPending = true
	}
	c.nmiPrevious = state
}

// SetIRQ sets the level-triggered IRQ line (APU frame IRQ, DMC IRQ and
// MMC3 scanline IRQ are ORed together by the caller before this call).
func (c *CPU) SetIRQ(state bool) { c.irqLine = state }

// Step executes one instruction, or burns one cycle if the CPU is
// stalled (OAM DMA or a DMC sample fetch), and returns the cycle count
// consumed. Pending interrupts are sampled at the following instruction
// boundary, after this call returns.
func (c *CPU) Step() uint64 {
	if c.Stall > 0 {
		c.Stall--
		c.Cycles++
		return 1
	}

	interruptCycles := c.serviceInterrupts()

	opcode := c.bus.Read(c.PC)
	entry := &opcodeTable[opcode]

	addr, pageCrossed := c.resolveAddress(entry.mode)
	extra := entry.exec(c, addr, entry.mode)

	total := interruptCycles + uint64(entry.cycles) + uint64(extra)
	if pageCrossed && entry.pagePenalty {
		total++
	}
	c.Cycles += total
	return total
}

// serviceInterrupts delivers a pending NMI (priority) or a level IRQ
// (masked by the I flag) before the next instruction fetch, returning the
// 7-cycle cost so the caller folds it into the step it services instead
// of losing it off the bus's PPU/APU co-stepping.
func (c *CPU) serviceInterrupts() uint64 {
	if c.nmiPending {
		c.nmiPending = false
		return c.interrupt(nmiVector, false)
	}
	if c.irqLine && !c.I {
		return c.interrupt(irqVector, false)
	}
	return 0
}

// interrupt pushes PC and P (B as requested) and jumps through vector,
// costing 7 cycles. brk is true only for the BRK instruction itself.
func (c *CPU) interrupt(vector uint16, brk bool) uint64 {
	c.pushWord(c.PC)
	status := c.statusByte(brk)
	c.push(status)
	c.I = true
	lo := uint16(c.bus.Read(vector))
	hi := uint16(c.bus.Read(vector + 1))
	c.PC = hi<<8 | lo
	return 7
}

// resolveAddress computes the effective address for mode, advancing PC
// past the instruction's operand bytes, and reports whether the
// effective address crosses a page from its un-indexed base (used for
// the page-cross cycle penalty and as a testable invariant).
func (c *CPU) resolveAddress(mode AddressingMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		c.PC++
		return 0, false

	case Immediate:
		addr := c.PC + 1
		c.PC += 2
		return addr, false

	case ZeroPage:
		addr := uint16(c.bus.Read(c.PC + 1))
		c.PC += 2
		return addr, false

	case ZeroPageX:
		base := c.bus.Read(c.PC + 1)
		c.PC += 2
		return uint16(base + c.X), false

	case ZeroPageY:
		base := c.bus.Read(c.PC + 1)
		c.PC += 2
		return uint16(base + c.Y), false

	case Relative:
		offset := int8(c.bus.Read(c.PC + 1))
		base := c.PC + 2
		target := uint16(int32(base) + int32(offset))
		c.PC = base
		return target, (base & pageMask) != (target & pageMask)

	case Absolute:
		lo := uint16(c.bus.Read(c.PC + 1))
		hi := uint16(c.bus.Read(c.PC + 2))
		c.PC += 3
		return hi<<8 | lo, false

	case AbsoluteX:
		lo := uint16(c.bus.Read(c.PC + 1))
		hi := uint16(c.bus.Read(c.PC + 2))
		base := hi<<8 | lo
		addr := base + uint16(c.X)
		c.PC += 3
		return addr, (base & pageMask) != (addr & pageMask)

	case AbsoluteY:
		lo := uint16(c.bus.Read(c.PC + 1))
		hi := uint16(c.bus.Read(c.PC + 2))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.PC += 3
		return addr, (base & pageMask) != (addr & pageMask)

	case Indirect: // JMP only; reproduces the page-wrap bug
		lo := uint16(c.bus.Read(c.PC + 1))
		hi := uint16(c.bus.Read(c.PC + 2))
		ptr := hi<<8 | lo
		var addr uint16
		if ptr&0x00FF == 0x00FF {
			l := uint16(c.bus.Read(ptr))
			h := uint16(c.bus.Read(ptr & pageMask))
			addr = h<<8 | l
		} else {
			l := uint16(c.bus.Read(ptr))
			h := uint16(c.bus.Read(ptr + 1))
			addr = h<<8 | l
		}
		c.PC += 3
		return addr, false

	case IndexedIndirect: // (zp,X)
		base := c.bus.Read(c.PC + 1)
		ptr := base + c.X
		lo := uint16(c.bus.Read(uint16(ptr)))
		hi := uint16(c.bus.Read(uint16(ptr + 1)))
		c.PC += 2
		return hi<<8 | lo, false

	case IndirectIndexed: // (zp),Y
		ptr := uint16(c.bus.Read(c.PC + 1))
		lo := uint16(c.bus.Read(ptr))
		hi := uint16(c.bus.Read((ptr + 1) & zeroPageMsk))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.PC += 2
		return addr, (base & pageMask) != (addr & pageMask)

	default:
		return 0, false
	}
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

// statusByte packs the flags into the P register layout. Bit 5 is not a
// real flag in this struct — it always reads 1 on the wire. Bit 4 (B)
// reflects brk (set for BRK/PHP, clear for a hardware NMI/IRQ push), per
// the invariant that B only exists as a pushed value, never as CPU state
// read back by PLP/RTI.
func (c *CPU) statusByte(brk bool) uint8 {
	var s uint8
	if c.N {
		s |= 0x80
	}
	if c.V {
		s |= 0x40
	}
	s |= 0x20
	if brk {
		s |= 0x10
	}
	if c.D {
		s |= 0x08
	}
	if c.I {
		s |= 0x04
	}
	if c.Z {
		s |= 0x02
	}
	if c.C {
		s |= 0x01
	}
	return s
}

// setStatusByte restores flags from a popped P byte (PLP/RTI). Bit 5 and
// bit 4 are discarded: this CPU has no storage for them.
func (c *CPU) setStatusByte(s uint8) {
	c.N = s&0x80 != 0
	c.V = s&0x40 != 0
	c.D = s&0x08 != 0
	c.I = s&0x04 != 0
	c.Z = s&0x02 != 0
	c.C = s&0x01 != 0
}

// GetStatusByte exposes P as software (PHP/BRK) would see it, for tests
// and for disassembly/logging tools.
func (c *CPU) GetStatusByte() uint8 { return c.statusByte(c.B) }

// SetStatusByte is the test/debug counterpart of GetStatusByte.
func (c *CPU) SetStatusByte(s uint8) { c.setStatusByte(s) }
