package cpu

// opInfo is one dispatch-table entry: the exec function, the addressing
// mode used to resolve its operand, its base cycle cost, and whether an
// indexed-mode page crossing adds one more cycle.
type opInfo struct {
	exec           opFunc
	mode           AddressingMode
	cycles         uint8
	pageCrossExtra bool
}

// opcodeTable covers every documented 6502 opcode plus the unofficial
// opcodes NES software and test ROMs commonly rely on. The JAM/KIL opcodes
// that lock the real CPU map to opJAM, which panics with an
// IllegalOpcodeError.
var opcodeTable = [256]opInfo{
	0x00: {opBRK, Implied, 7, false},
	0x01: {opORA, IndexedIndirect, 6, false},
	0x02: {opJAM, Implied, 0, false},
	0x03: {opSLO, IndexedIndirect, 8, false},
	0x04: {opNOP, ZeroPage, 3, false},
	0x05: {opORA, ZeroPage, 3, false},
	0x06: {opASL, ZeroPage, 5, false},
	0x07: {opSLO, ZeroPage, 5, false},
	0x08: {opPHP, Implied, 3, false},
	0x09: {opORA, Immediate, 2, false},
	0x0A: {opASL, Accumulator, 2, false},
	0x0B: {opANC, Immediate, 2, false},
	0x0C: {opNOP, Absolute, 4, false},
	0x0D: {opORA, Absolute, 4, false},
	0x0E: {opASL, Absolute, 6, false},
	0x0F: {opSLO, Absolute, 6, false},

	0x10: {opBPL, Relative, 2, false},
	0x11: {opORA, IndirectIndexed, 5, true},
	0x12: {opJAM, Implied, 0, false},
	0x13: {opSLO, IndirectIndexed, 8, false},
	0x14: {opNOP, ZeroPageX, 4, false},
	0x15: {opORA, ZeroPageX, 4, false},
	0x16: {opASL, ZeroPageX, 6, false},
	0x17: {opSLO, ZeroPageX, 6, false},
	0x18: {opCLC, Implied, 2, false},
	0x19: {opORA, AbsoluteY, 4, true},
	0x1A: {opNOP, Implied, 2, false},
	0x1B: {opSLO, AbsoluteY, 7, false},
	0x1C: {opNOP, AbsoluteX, 4, true},
	0x1D: {opORA, AbsoluteX, 4, true},
	0x1E: {opASL, AbsoluteX, 7, false},
	0x1F: {opSLO, AbsoluteX, 7, false},

	0x20: {opJSR, Absolute, 6, false},
	0x21: {opAND, IndexedIndirect, 6, false},
	0x22: {opJAM, Implied, 0, false},
	0x23: {opRLA, IndexedIndirect, 8, false},
	0x24: {opBIT, ZeroPage, 3, false},
	0x25: {opAND, ZeroPage, 3, false},
	0x26: {opROL, ZeroPage, 5, false},
	0x27: {opRLA, ZeroPage, 5, false},
	0x28: {opPLP, Implied, 4, false},
	0x29: {opAND, Immediate, 2, false},
	0x2A: {opROL, Accumulator, 2, false},
	0x2B: {opANC, Immediate, 2, false},
	0x2C: {opBIT, Absolute, 4, false},
	0x2D: {opAND, Absolute, 4, false},
	0x2E: {opROL, Absolute, 6, false},
	0x2F: {opRLA, Absolute, 6, false},

	0x30: {opBMI, Relative, 2, false},
	0x31: {opAND, IndirectIndexed, 5, true},
	0x32: {opJAM, Implied, 0, false},
	0x33: {opRLA, IndirectIndexed, 8, false},
	0x34: {opNOP, ZeroPageX, 4, false},
	0x35: {opAND, ZeroPageX, 4, false},
	0x36: {opROL, ZeroPageX, 6, false},
	0x37: {opRLA, ZeroPageX, 6, false},
	0x38: {opSEC, Implied, 2, false},
	0x39: {opAND, AbsoluteY, 4, true},
	0x3A: {opNOP, Implied, 2, false},
	0x3B: {opRLA, AbsoluteY, 7, false},
	0x3C: {opNOP, AbsoluteX, 4, true},
	0x3D: {opAND, AbsoluteX, 4, true},
	0x3E: {opROL, AbsoluteX, 7, false},
	0x3F: {opRLA, AbsoluteX, 7, false},

	0x40: {opRTI, Implied, 6, false},
	0x41: {opEOR, IndexedIndirect, 6, false},
	0x42: {opJAM, Implied, 0, false},
	0x43: {opSRE, IndexedIndirect, 8, false},
	0x44: {opNOP, ZeroPage, 3, false},
	0x45: {opEOR, ZeroPage, 3, false},
	0x46: {opLSR, ZeroPage, 5, false},
	0x47: {opSRE, ZeroPage, 5, false},
	0x48: {opPHA, Implied, 3, false},
	0x49: {opEOR, Immediate, 2, false},
	0x4A: {opLSR, Accumulator, 2, false},
	0x4B: {opALR, Immediate, 2, false},
	0x4C: {opJMP, Absolute, 3, false},
	0x4D: {opEOR, Absolute, 4, false},
	0x4E: {opLSR, Absolute, 6, false},
	0x4F: {opSRE, Absolute, 6, false},

	0x50: {opBVC, Relative, 2, false},
	0x51: {opEOR, IndirectIndexed, 5, true},
	0x52: {opJAM, Implied, 0, false},
	0x53: {opSRE, IndirectIndexed, 8, false},
	0x54: {opNOP, ZeroPageX, 4, false},
	0x55: {opEOR, ZeroPageX, 4, false},
	0x56: {opLSR, ZeroPageX, 6, false},
	0x57: {opSRE, ZeroPageX, 6, false},
	0x58: {opCLI, Implied, 2, false},
	0x59: {opEOR, AbsoluteY, 4, true},
	0x5A: {opNOP, Implied, 2, false},
	0x5B: {opSRE, AbsoluteY, 7, false},
	0x5C: {opNOP, AbsoluteX, 4, true},
	0x5D: {opEOR, AbsoluteX, 4, true},
	0x5E: {opLSR, AbsoluteX, 7, false},
	0x5F: {opSRE, AbsoluteX, 7, false},

	0x60: {opRTS, Implied, 6, false},
	0x61: {opADC, IndexedIndirect, 6, false},
	0x62: {opJAM, Implied, 0, false},
	0x63: {opRRA, IndexedIndirect, 8, false},
	0x64: {opNOP, ZeroPage, 3, false},
	0x65: {opADC, ZeroPage, 3, false},
	0x66: {opROR, ZeroPage, 5, false},
	0x67: {opRRA, ZeroPage, 5, false},
	0x68: {opPLA, Implied, 4, false},
	0x69: {opADC, Immediate, 2, false},
	0x6A: {opROR, Accumulator, 2, false},
	0x6B: {opARR, Immediate, 2, false},
	0x6C: {opJMP, Indirect, 5, false},
	0x6D: {opADC, Absolute, 4, false},
	0x6E: {opROR, Absolute, 6, false},
	0x6F: {opRRA, Absolute, 6, false},

	0x70: {opBVS, Relative, 2, false},
	0x71: {opADC, IndirectIndexed, 5, true},
	0x72: {opJAM, Implied, 0, false},
	0x73: {opRRA, IndirectIndexed, 8, false},
	0x74: {opNOP, ZeroPageX, 4, false},
	0x75: {opADC, ZeroPageX, 4, false},
	0x76: {opROR, ZeroPageX, 6, false},
	0x77: {opRRA, ZeroPageX, 6, false},
	0x78: {opSEI, Implied, 2, false},
	0x79: {opADC, AbsoluteY, 4, true},
	0x7A: {opNOP, Implied, 2, false},
	0x7B: {opRRA, AbsoluteY, 7, false},
	0x7C: {opNOP, AbsoluteX, 4, true},
	0x7D: {opADC, AbsoluteX, 4, true},
	0x7E: {opROR, AbsoluteX, 7, false},
	0x7F: {opRRA, AbsoluteX, 7, false},

	0x80: {opNOP, Immediate, 2, false},
	0x81: {opSTA, IndexedIndirect, 6, false},
	0x82: {opNOP, Immediate, 2, false},
	0x83: {opSAX, IndexedIndirect, 6, false},
	0x84: {opSTY, ZeroPage, 3, false},
	0x85: {opSTA, ZeroPage, 3, false},
	0x86: {opSTX, ZeroPage, 3, false},
	0x87: {opSAX, ZeroPage, 3, false},
	0x88: {opDEY, Implied, 2, false},
	0x89: {opNOP, Immediate, 2, false},
	0x8A: {opTXA, Implied, 2, false},
	0x8B: {opANE, Immediate, 2, false},
	0x8C: {opSTY, Absolute, 4, false},
	0x8D: {opSTA, Absolute, 4, false},
	0x8E: {opSTX, Absolute, 4, false},
	0x8F: {opSAX, Absolute, 4, false},

	0x90: {opBCC, Relative, 2, false},
	0x91: {opSTA, IndirectIndexed, 6, false},
	0x92: {opJAM, Implied, 0, false},
	0x93: {opSHA, IndirectIndexed, 6, false},
	0x94: {opSTY, ZeroPageX, 4, false},
	0x95: {opSTA, ZeroPageX, 4, false},
	0x96: {opSTX, ZeroPageY, 4, false},
	0x97: {opSAX, ZeroPageY, 4, false},
	0x98: {opTYA, Implied, 2, false},
	0x99: {opSTA, AbsoluteY, 5, false},
	0x9A: {opTXS, Implied, 2, false},
	0x9B: {opTAS, AbsoluteY, 5, false},
	0x9C: {opSHY, AbsoluteX, 5, false},
	0x9D: {opSTA, AbsoluteX, 5, false},
	0x9E: {opSHX, AbsoluteY, 5, false},
	0x9F: {opSHA, AbsoluteY, 5, false},

	0xA0: {opLDY, Immediate, 2, false},
	0xA1: {opLDA, IndexedIndirect, 6, false},
	0xA2: {opLDX, Immediate, 2, false},
	0xA3: {opLAX, IndexedIndirect, 6, false},
	0xA4: {opLDY, ZeroPage, 3, false},
	0xA5: {opLDA, ZeroPage, 3, false},
	0xA6: {opLDX, ZeroPage, 3, false},
	0xA7: {opLAX, ZeroPage, 3, false},
	0xA8: {opTAY, Implied, 2, false},
	0xA9: {opLDA, Immediate, 2, false},
	0xAA: {opTAX, Implied, 2, false},
	0xAB: {opLXA, Immediate, 2, false},
	0xAC: {opLDY, Absolute, 4, false},
	0xAD: {opLDA, Absolute, 4, false},
	0xAE: {opLDX, Absolute, 4, false},
	0xAF: {opLAX, Absolute, 4, false},

	0xB0: {opBCS, Relative, 2, false},
	0xB1: {opLDA, IndirectIndexed, 5, true},
	0xB2: {opJAM, Implied, 0, false},
	0xB3: {opLAX, IndirectIndexed, 5, true},
	0xB4: {opLDY, ZeroPageX, 4, false},
	0xB5: {opLDA, ZeroPageX, 4, false},
	0xB6: {opLDX, ZeroPageY, 4, false},
	0xB7: {opLAX, ZeroPageY, 4, false},
	0xB8: {opCLV, Implied, 2, false},
	0xB9: {opLDA, AbsoluteY, 4, true},
	0xBA: {opTSX, Implied, 2, false},
	0xBB: {opLAS, AbsoluteY, 4, true},
	0xBC: {opLDY, AbsoluteX, 4, true},
	0xBD: {opLDA, AbsoluteX, 4, true},
	0xBE: {opLDX, AbsoluteY, 4, true},
	0xBF: {opLAX, AbsoluteY, 4, true},

	0xC0: {opCPY, Immediate, 2, false},
	0xC1: {opCMP, IndexedIndirect, 6, false},
	0xC2: {opNOP, Immediate, 2, false},
	0xC3: {opDCP, IndexedIndirect, 8, false},
	0xC4: {opCPY, ZeroPage, 3, false},
	0xC5: {opCMP, ZeroPage, 3, false},
	0xC6: {opDEC, ZeroPage, 5, false},
	0xC7: {opDCP, ZeroPage, 5, false},
	0xC8: {opINY, Implied, 2, false},
	0xC9: {opCMP, Immediate, 2, false},
	0xCA: {opDEX, Implied, 2, false},
	0xCB: {opSBX, Immediate, 2, false},
	0xCC: {opCPY, Absolute, 4, false},
	0xCD: {opCMP, Absolute, 4, false},
	0xCE: {opDEC, Absolute, 6, false},
	0xCF: {opDCP, Absolute, 6, false},

	0xD0: {opBNE, Relative, 2, false},
	0xD1: {opCMP, IndirectIndexed, 5, true},
	0xD2: {opJAM, Implied, 0, false},
	0xD3: {opDCP, IndirectIndexed, 8, false},
	0xD4: {opNOP, ZeroPageX, 4, false},
	0xD5: {opCMP, ZeroPageX, 4, false},
	0xD6: {opDEC, ZeroPageX, 6, false},
	0xD7: {opDCP, ZeroPageX, 6, false},
	0xD8: {opCLD, Implied, 2, false},
	0xD9: {opCMP, AbsoluteY, 4, true},
	0xDA: {opNOP, Implied, 2, false},
	0xDB: {opDCP, AbsoluteY, 7, false},
	0xDC: {opNOP, AbsoluteX, 4, true},
	0xDD: {opCMP, AbsoluteX, 4, true},
	0xDE: {opDEC, AbsoluteX, 7, false},
	0xDF: {opDCP, AbsoluteX, 7, false},

	0xE0: {opCPX, Immediate, 2, false},
	0xE1: {opSBC, IndexedIndirect, 6, false},
	0xE2: {opNOP, Immediate, 2, false},
	0xE3: {opISB, IndexedIndirect, 8, false},
	0xE4: {opCPX, ZeroPage, 3, false},
	0xE5: {opSBC, ZeroPage, 3, false},
	0xE6: {opINC, ZeroPage, 5, false},
	0xE7: {opISB, ZeroPage, 5, false},
	0xE8: {opINX, Implied, 2, false},
	0xE9: {opSBC, Immediate, 2, false},
	0xEA: {opNOP, Implied, 2, false},
	0xEB: {opSBC, Immediate, 2, false},
	0xEC: {opCPX, Absolute, 4, false},
	0xED: {opSBC, Absolute, 4, false},
	0xEE: {opINC, Absolute, 6, false},
	0xEF: {opISB, Absolute, 6, false},

	0xF0: {opBEQ, Relative, 2, false},
	0xF1: {opSBC, IndirectIndexed, 5, true},
	0xF2: {opJAM, Implied, 0, false},
	0xF3: {opISB, IndirectIndexed, 8, false},
	0xF4: {opNOP, ZeroPageX, 4, false},
	0xF5: {opSBC, ZeroPageX, 4, false},
	0xF6: {opINC, ZeroPageX, 6, false},
	0xF7: {opISB, ZeroPageX, 6, false},
	0xF8: {opSED, Implied, 2, false},
	0xF9: {opSBC, AbsoluteY, 4, true},
	0xFA: {opNOP, Implied, 2, false},
	0xFB: {opISB, AbsoluteY, 7, false},
	0xFC: {opNOP, AbsoluteX, 4, true},
	0xFD: {opSBC, AbsoluteX, 4, true},
	0xFE: {opINC, AbsoluteX, 7, false},
	0xFF: {opISB, AbsoluteX, 7, false},
}
