package cartridge

// mapper002 implements UxROM: a single 16KiB switchable bank at $8000 and a
// 16KiB bank fixed at $C000 to the last bank in the image. CHR is always
// 8 KiB of RAM (UxROM boards carry no CHR ROM).
type mapper002 struct {
	cart    *Cartridge
	prgBank uint8
}

func newMapper002(cart *Cartridge) *mapper002 {
	return &mapper002{cart: cart}
}

func (m *mapper002) Reset() { m.prgBank = 0 }

func (m *mapper002) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	banks := prgBankCount16k(m.cart)
	if addr < 0xC000 {
		bank := int(m.prgBank) % banks
		return m.cart.prgROM[bank*0x4000+int(addr-0x8000)], true
	}
	return m.cart.prgROM[(banks-1)*0x4000+int(addr-0xC000)], true
}

// CPUWrite selects the $8000 bank; the bus pattern only has room for the
// low bits of data to matter, so the full byte is masked by the bank count.
func (m *mapper002) CPUWrite(addr uint16, value uint8) {
	if addr >= 0x8000 {
		m.prgBank = value
	}
}

func (m *mapper002) PPURead(addr uint16) uint8 { return m.cart.chrROM[addr&0x1FFF] }

func (m *mapper002) PPUWrite(addr uint16, value uint8) {
	if m.cart.hasCHRRAM {
		m.cart.chrROM[addr&0x1FFF] = value
	}
}

func (m *mapper002) MirrorOverride() (MirrorMode, bool) { return 0, false }
func (m *mapper002) ScanlineTick()                       {}
func (m *mapper002) IRQPending() bool                    { return false }
func (m *mapper002) ClearIRQ()                           {}
