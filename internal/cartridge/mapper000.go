package cartridge

// mapper000 implements NROM: no bank switching, 16 or 32 KiB of fixed PRG
// ROM and 8 KiB of CHR ROM or RAM, plus an 8 KiB PRG-RAM window.
type mapper000 struct {
	cart     *Cartridge
	prgMask  uint16
	prgRAM   [0x2000]uint8
}

func newMapper000(cart *Cartridge) *mapper000 {
	mask := uint16(0x3FFF)
	if prgBankCount16k(cart) > 1 {
		mask = 0x7FFF
	}
	return &mapper000{cart: cart, prgMask: mask}
}

func (m *mapper000) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x8000:
		return m.cart.prgROM[addr&m.prgMask], true
	case addr >= 0x6000:
		return m.prgRAM[addr-0x6000], true
	default:
		return 0, false
	}
}

func (m *mapper000) CPUWrite(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = value
	}
	// Writes to ROM space are ignored; NROM has no registers.
}

func (m *mapper000) PPURead(addr uint16) uint8 {
	return m.cart.chrROM[addr&0x1FFF]
}

func (m *mapper000) PPUWrite(addr uint16, value uint8) {
	if m.cart.hasCHRRAM {
		m.cart.chrROM[addr&0x1FFF] = value
	}
}

func (m *mapper000) MirrorOverride() (MirrorMode, bool) { return 0, false }
func (m *mapper000) ScanlineTick()                       {}
func (m *mapper000) IRQPending() bool                    { return false }
func (m *mapper000) ClearIRQ()                           {}
func (m *mapper000) Reset()                              {}
