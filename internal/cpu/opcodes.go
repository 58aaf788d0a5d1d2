package cpu

// opFunc is the exec half of an opcode table entry. It receives the
// effective address already resolved by resolveAddress (0 for
// Implied/Accumulator) and returns any extra cycles beyond the entry's
// base cost (branches taken/page-crossed).
type opFunc func(c *CPU, addr uint16, mode AddressingMode) uint8

// opEntry is one row of the 256-entry dispatch table: the two explicit
// per-opcode tables the design calls for (base cycle cost and whether a
// page crossing adds a cycle) are folded into cycles/pagePenalty here
// rather than kept as separate arrays, since every row in this table
// already carries both alongside the addressing mode and handler it was
// measured against.
type opEntry struct {
	name        string
	mode        AddressingMode
	cycles      uint8
	pagePenalty bool
	exec        opFunc
}

var opcodeTable [256]opEntry

func op(code uint8, name string, mode AddressingMode, cycles uint8, pagePenalty bool, fn opFunc) {
	opcodeTable[code] = opEntry{name: name, mode: mode, cycles: cycles, pagePenalty: pagePenalty, exec: fn}
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opEntry{name: "JAM", mode: Implied, cycles: 2, exec: nop}
	}

	// --- official opcodes ---

	op(0x69, "ADC", Immediate, 2, false, adc)
	op(0x65, "ADC", ZeroPage, 3, false, adc)
	op(0x75, "ADC", ZeroPageX, 4, false, adc)
	op(0x6D, "ADC", Absolute, 4, false, adc)
	op(0x7D, "ADC", AbsoluteX, 4, true, adc)
	op(0x79, "ADC", AbsoluteY, 4, true, adc)
	op(0x61, "ADC", IndexedIndirect, 6, false, adc)
	op(0x71, "ADC", IndirectIndexed, 5, true, adc)

	op(0x29, "AND", Immediate, 2, false, and)
	op(0x25, "AND", ZeroPage, 3, false, and)
	op(0x35, "AND", ZeroPageX, 4, false, and)
	op(0x2D, "AND", Absolute, 4, false, and)
	op(0x3D, "AND", AbsoluteX, 4, true, and)
	op(0x39, "AND", AbsoluteY, 4, true, and)
	op(0x21, "AND", IndexedIndirect, 6, false, and)
	op(0x31, "AND", IndirectIndexed, 5, true, and)

	op(0x0A, "ASL", Accumulator, 2, false, asl)
	op(0x06, "ASL", ZeroPage, 5, false, asl)
	op(0x16, "ASL", ZeroPageX, 6, false, asl)
	op(0x0E, "ASL", Absolute, 6, false, asl)
	op(0x1E, "ASL", AbsoluteX, 7, false, asl)

	op(0x90, "BCC", Relative, 2, false, bcc)
	op(0xB0, "BCS", Relative, 2, false, bcs)
	op(0xF0, "BEQ", Relative, 2, false, beq)
	op(0x30, "BMI", Relative, 2, false, bmi)
	op(0xD0, "BNE", Relative, 2, false, bne)
	op(0x10, "BPL", Relative, 2, false, bpl)
	op(0x50, "BVC", Relative, 2, false, bvc)
	op(0x70, "BVS", Relative, 2, false, bvs)

	op(0x24, "BIT", ZeroPage, 3, false, bit)
	op(0x2C, "BIT", Absolute, 4, false, bit)

	op(0x00, "BRK", Implied, 7, false, brk)

	op(0x18, "CLC", Implied, 2, false, clc)
	op(0xD8, "CLD", Implied, 2, false, cld)
	op(0x58, "CLI", Implied, 2, false, cli)
	op(0xB8, "CLV", Implied, 2, false, clv)
	op(0x38, "SEC", Implied, 2, false, sec)
	op(0xF8, "SED", Implied, 2, false, sed)
	op(0x78, "SEI", Implied, 2, false, sei)

	op(0xC9, "CMP", Immediate, 2, false, cmp)
	op(0xC5, "CMP", ZeroPage, 3, false, cmp)
	op(0xD5, "CMP", ZeroPageX, 4, false, cmp)
	op(0xCD, "CMP", Absolute, 4, false, cmp)
	op(0xDD, "CMP", AbsoluteX, 4, true, cmp)
	op(0xD9, "CMP", AbsoluteY, 4, true, cmp)
	op(0xC1, "CMP", IndexedIndirect, 6, false, cmp)
	op(0xD1, "CMP", IndirectIndexed, 5, true, cmp)

	op(0xE0, "CPX", Immediate, 2, false, cpx)
	op(0xE4, "CPX", ZeroPage, 3, false, cpx)
	op(0xEC, "CPX", Absolute, 4, false, cpx)

	op(0xC0, "CPY", Immediate, 2, false, cpy)
	op(0xC4, "CPY", ZeroPage, 3, false, cpy)
	op(0xCC, "CPY", Absolute, 4, false, cpy)

	op(0xC6, "DEC", ZeroPage, 5, false, dec)
	op(0xD6, "DEC", ZeroPageX, 6, false, dec)
	op(0xCE, "DEC", Absolute, 6, false, dec)
	op(0xDE, "DEC", AbsoluteX, 7, false, dec)

	op(0xCA, "DEX", Implied, 2, false, dex)
	op(0x88, "DEY", Implied, 2, false, dey)
	op(0xE8, "INX", Implied, 2, false, inx)
	op(0xC8, "INY", Implied, 2, false, iny)

	op(0x49, "EOR", Immediate, 2, false, eor)
	op(0x45, "EOR", ZeroPage, 3, false, eor)
	op(0x55, "EOR", ZeroPageX, 4, false, eor)
	op(0x4D, "EOR", Absolute, 4, false, eor)
	op(0x5D, "EOR", AbsoluteX, 4, true, eor)
	op(0x59, "EOR", AbsoluteY, 4, true, eor)
	op(0x41, "EOR", IndexedIndirect, 6, false, eor)
	op(0x51, "EOR", IndirectIndexed, 5, true, eor)

	op(0xE6, "INC", ZeroPage, 5, false, inc)
	op(0xF6, "INC", ZeroPageX, 6, false, inc)
	op(0xEE, "INC", Absolute, 6, false, inc)
	op(0xFE, "INC", AbsoluteX, 7, false, inc)

	op(0x4C, "JMP", Absolute, 3, false, jmp)
	op(0x6C, "JMP", Indirect, 5, false, jmp)
	op(0x20, "JSR", Absolute, 6, false, jsr)

	op(0xA9, "LDA", Immediate, 2, false, lda)
	op(0xA5, "LDA", ZeroPage, 3, false, lda)
	op(0xB5, "LDA", ZeroPageX, 4, false, lda)
	op(0xAD, "LDA", Absolute, 4, false, lda)
	op(0xBD, "LDA", AbsoluteX, 4, true, lda)
	op(0xB9, "LDA", AbsoluteY, 4, true, lda)
	op(0xA1, "LDA", IndexedIndirect, 6, false, lda)
	op(0xB1, "LDA", IndirectIndexed, 5, true, lda)

	op(0xA2, "LDX", Immediate, 2, false, ldx)
	op(0xA6, "LDX", ZeroPage, 3, false, ldx)
	op(0xB6, "LDX", ZeroPageY, 4, false, ldx)
	op(0xAE, "LDX", Absolute, 4, false, ldx)
	op(0xBE, "LDX", AbsoluteY, 4, true, ldx)

	op(0xA0, "LDY", Immediate, 2, false, ldy)
	op(0xA4, "LDY", ZeroPage, 3, false, ldy)
	op(0xB4, "LDY", ZeroPageX, 4, false, ldy)
	op(0xAC, "LDY", Absolute, 4, false, ldy)
	op(0xBC, "LDY", AbsoluteX, 4, true, ldy)

	op(0x4A, "LSR", Accumulator, 2, false, lsr)
	op(0x46, "LSR", ZeroPage, 5, false, lsr)
	op(0x56, "LSR", ZeroPageX, 6, false, lsr)
	op(0x4E, "LSR", Absolute, 6, false, lsr)
	op(0x5E, "LSR", AbsoluteX, 7, false, lsr)

	op(0xEA, "NOP", Implied, 2, false, nop)

	op(0x09, "ORA", Immediate, 2, false, ora)
	op(0x05, "ORA", ZeroPage, 3, false, ora)
	op(0x15, "ORA", ZeroPageX, 4, false, ora)
	op(0x0D, "ORA", Absolute, 4, false, ora)
	op(0x1D, "ORA", AbsoluteX, 4, true, ora)
	op(0x19, "ORA", AbsoluteY, 4, true, ora)
	op(0x01, "ORA", IndexedIndirect, 6, false, ora)
	op(0x11, "ORA", IndirectIndexed, 5, true, ora)

	op(0x48, "PHA", Implied, 3, false, pha)
	op(0x08, "PHP", Implied, 3, false, php)
	op(0x68, "PLA", Implied, 4, false, pla)
	op(0x28, "PLP", Implied, 4, false, plp)

	op(0x2A, "ROL", Accumulator, 2, false, rol)
	op(0x26, "ROL", ZeroPage, 5, false, rol)
	op(0x36, "ROL", ZeroPageX, 6, false, rol)
	op(0x2E, "ROL", Absolute, 6, false, rol)
	op(0x3E, "ROL", AbsoluteX, 7, false, rol)

	op(0x6A, "ROR", Accumulator, 2, false, ror)
	op(0x66, "ROR", ZeroPage, 5, false, ror)
	op(0x76, "ROR", ZeroPageX, 6, false, ror)
	op(0x6E, "ROR", Absolute, 6, false, ror)
	op(0x7E, "ROR", AbsoluteX, 7, false, ror)

	op(0x40, "RTI", Implied, 6, false, rti)
	op(0x60, "RTS", Implied, 6, false, rts)

	op(0xE9, "SBC", Immediate, 2, false, sbc)
	op(0xE5, "SBC", ZeroPage, 3, false, sbc)
	op(0xF5, "SBC", ZeroPageX, 4, false, sbc)
	op(0xED, "SBC", Absolute, 4, false, sbc)
	op(0xFD, "SBC", AbsoluteX, 4, true, sbc)
	op(0xF9, "SBC", AbsoluteY, 4, true, sbc)
	op(0xE1, "SBC", IndexedIndirect, 6, false, sbc)
	op(0xF1, "SBC", IndirectIndexed, 5, true, sbc)
	op(0xEB, "SBC", Immediate, 2, false, sbc) // documented illegal duplicate

	op(0x85, "STA", ZeroPage, 3, false, sta)
	op(0x95, "STA", ZeroPageX, 4, false, sta)
	op(0x8D, "STA", Absolute, 4, false, sta)
	op(0x9D, "STA", AbsoluteX, 5, false, sta)
	op(0x99, "STA", AbsoluteY, 5, false, sta)
	op(0x81, "STA", IndexedIndirect, 6, false, sta)
	op(0x91, "STA", IndirectIndexed, 6, false, sta)

	op(0x86, "STX", ZeroPage, 3, false, stx)
	op(0x96, "STX", ZeroPageY, 4, false, stx)
	op(0x8E, "STX", Absolute, 4, false, stx)

	op(0x84, "STY", ZeroPage, 3, false, sty)
	op(0x94, "STY", ZeroPageX, 4, false, sty)
	op(0x8C, "STY", Absolute, 4, false, sty)

	op(0xAA, "TAX", Implied, 2, false, tax)
	op(0xA8, "TAY", Implied, 2, false, tay)
	op(0xBA, "TSX", Implied, 2, false, tsx)
	op(0x8A, "TXA", Implied, 2, false, txa)
	op(0x9A, "TXS", Implied, 2, false, txs)
	op(0x98, "TYA", Implied, 2, false, tya)

	// --- documented illegal opcodes ---

	op(0xA7, "LAX", ZeroPage, 3, false, lax)
	op(0xB7, "LAX", ZeroPageY, 4, false, lax)
	op(0xAF, "LAX", Absolute, 4, false, lax)
	op(0xBF, "LAX", AbsoluteY, 4, true, lax)
	op(0xA3, "LAX", IndexedIndirect, 6, false, lax)
	op(0xB3, "LAX", IndirectIndexed, 5, true, lax)

	op(0x87, "SAX", ZeroPage, 3, false, sax)
	op(0x97, "SAX", ZeroPageY, 4, false, sax)
	op(0x8F, "SAX", Absolute, 4, false, sax)
	op(0x83, "SAX", IndexedIndirect, 6, false, sax)

	op(0xC7, "DCP", ZeroPage, 5, false, dcp)
	op(0xD7, "DCP", ZeroPageX, 6, false, dcp)
	op(0xCF, "DCP", Absolute, 6, false, dcp)
	op(0xDF, "DCP", AbsoluteX, 7, false, dcp)
	op(0xDB, "DCP", AbsoluteY, 7, false, dcp)
	op(0xC3, "DCP", IndexedIndirect, 8, false, dcp)
	op(0xD3, "DCP", IndirectIndexed, 8, false, dcp)

	op(0xE7, "ISB", ZeroPage, 5, false, isb)
	op(0xF7, "ISB", ZeroPageX, 6, false, isb)
	op(0xEF, "ISB", Absolute, 6, false, isb)
	op(0xFF, "ISB", AbsoluteX, 7, false, isb)
	op(0xFB, "ISB", AbsoluteY, 7, false, isb)
	op(0xE3, "ISB", IndexedIndirect, 8, false, isb)
	op(0xF3, "ISB", IndirectIndexed, 8, false, isb)

	op(0x27, "RLA", ZeroPage, 5, false, rla)
	op(0x37, "RLA", ZeroPageX, 6, false, rla)
	op(0x2F, "RLA", Absolute, 6, false, rla)
	op(0x3F, "RLA", AbsoluteX, 7, false, rla)
	op(0x3B, "RLA", AbsoluteY, 7, false, rla)
	op(0x23, "RLA", IndexedIndirect, 8, false, rla)
	op(0x33, "RLA", IndirectIndexed, 8, false, rla)

	op(0x67, "RRA", ZeroPage, 5, false, rra)
	op(0x77, "RRA", ZeroPageX, 6, false, rra)
	op(0x6F, "RRA", Absolute, 6, false, rra)
	op(0x7F, "RRA", AbsoluteX, 7, false, rra)
	op(0x7B, "RRA", AbsoluteY, 7, false, rra)
	op(0x63, "RRA", IndexedIndirect, 8, false, rra)
	op(0x73, "RRA", IndirectIndexed, 8, false, rra)

	op(0x07, "SLO", ZeroPage, 5, false, slo)
	op(0x17, "SLO", ZeroPageX, 6, false, slo)
	op(0x0F, "SLO", Absolute, 6, false, slo)
	op(0x1F, "SLO", AbsoluteX, 7, false, slo)
	op(0x1B, "SLO", AbsoluteY, 7, false, slo)
	op(0x03, "SLO", IndexedIndirect, 8, false, slo)
	op(0x13, "SLO", IndirectIndexed, 8, false, slo)

	op(0x47, "SRE", ZeroPage, 5, false, sre)
	op(0x57, "SRE", ZeroPageX, 6, false, sre)
	op(0x4F, "SRE", Absolute, 6, false, sre)
	op(0x5F, "SRE", AbsoluteX, 7, false, sre)
	op(0x5B, "SRE", AbsoluteY, 7, false, sre)
	op(0x43, "SRE", IndexedIndirect, 8, false, sre)
	op(0x53, "SRE", IndirectIndexed, 8, false, sre)

	op(0x0B, "ANC", Immediate, 2, false, anc)
	op(0x2B, "ANC", Immediate, 2, false, anc)
	op(0x4B, "ALR", Immediate, 2, false, alr)
	op(0x6B, "ARR", Immediate, 2, false, arr)
	op(0xCB, "AXS", Immediate, 2, false, axs)

	// SKB: single-byte-operand NOPs (Immediate reads and discards).
	op(0x80, "SKB", Immediate, 2, false, skb)
	op(0x82, "SKB", Immediate, 2, false, skb)
	op(0x89, "SKB", Immediate, 2, false, skb)
	op(0xC2, "SKB", Immediate, 2, false, skb)
	op(0xE2, "SKB", Immediate, 2, false, skb)

	// IGN: NOPs that read a zero-page/absolute/indexed operand.
	op(0x04, "IGN", ZeroPage, 3, false, ign)
	op(0x44, "IGN", ZeroPage, 3, false, ign)
	op(0x64, "IGN", ZeroPage, 3, false, ign)
	op(0x0C, "IGN", Absolute, 4, false, ign)
	op(0x14, "IGN", ZeroPageX, 4, false, ign)
	op(0x34, "IGN", ZeroPageX, 4, false, ign)
	op(0x54, "IGN", ZeroPageX, 4, false, ign)
	op(0x74, "IGN", ZeroPageX, 4, false, ign)
	op(0xD4, "IGN", ZeroPageX, 4, false, ign)
	op(0xF4, "IGN", ZeroPageX, 4, false, ign)
	op(0x1C, "IGN", AbsoluteX, 4, true, ign)
	op(0x3C, "IGN", AbsoluteX, 4, true, ign)
	op(0x5C, "IGN", AbsoluteX, 4, true, ign)
	op(0x7C, "IGN", AbsoluteX, 4, true, ign)
	op(0xDC, "IGN", AbsoluteX, 4, true, ign)
	op(0xFC, "IGN", AbsoluteX, 4, true, ign)

	// Implied single-byte NOPs beyond $EA.
	for _, code := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(code, "NOP", Implied, 2, false, nop)
	}
}
