package cartridge

// mapper004 implements MMC3: eight bank-select registers (two 2KiB + four
// 1KiB CHR banks, two switchable 8KiB PRG banks), a mirroring latch, and a
// scanline-clocked IRQ counter driven by ScanlineTick.
type mapper004 struct {
	cart *Cartridge

	bankSelect uint8 // last value written to $8000
	bankReg    [8]uint8
	mirror     uint8 // last value written to $A000, bit0 only
	prgRAM     [0x2000]uint8

	irqLatch    uint8
	irqCounter  uint8
	irqReload   bool
	irqEnabled  bool
	irqPending  bool
}

func newMapper004(cart *Cartridge) *mapper004 {
	return &mapper004{cart: cart}
}

func (m *mapper004) Reset() {
	m.bankSelect = 0
	m.bankReg = [8]uint8{}
	m.mirror = 0
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqReload = false
	m.irqEnabled = false
	m.irqPending = false
}

func (m *mapper004) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x8000:
		return m.cart.prgROM[m.prgOffset(addr)], true
	case addr >= 0x6000:
		return m.prgRAM[addr-0x6000], true
	default:
		return 0, false
	}
}

func (m *mapper004) CPUWrite(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[addr-0x6000] = value
	case addr < 0xA000:
		if addr&1 == 0 {
			m.bankSelect = value
		} else {
			m.bankReg[m.bankSelect&7] = value
		}
	case addr < 0xC000:
		if addr&1 == 0 {
			m.mirror = value & 1
		}
		// $A001 (PRG-RAM protect) carries no behavior this core models.
	case addr < 0xE000:
		if addr&1 == 0 {
			m.irqLatch = value
		} else {
			m.irqReload = true
			m.irqCounter = 0
		}
	default:
		if addr&1 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mapper004) prgOffset(addr uint16) int {
	banks8 := len(m.cart.prgROM) / 0x2000
	offset := int(addr-0x8000) % 0x2000
	slot := int(addr-0x8000) / 0x2000 // 0..3 for $8000/$A000/$C000/$E000

	fixedSecondLast := banks8 - 2
	fixedLast := banks8 - 1
	r6 := int(m.bankReg[6]) % banks8
	r7 := int(m.bankReg[7]) % banks8

	var bank int
	if m.bankSelect&0x40 == 0 {
		switch slot {
		case 0:
			bank = r6
		case 1:
			bank = r7
		case 2:
			bank = fixedSecondLast
		default:
			bank = fixedLast
		}
	} else {
		switch slot {
		case 0:
			bank = fixedSecondLast
		case 1:
			bank = r7
		case 2:
			bank = r6
		default:
			bank = fixedLast
		}
	}
	return bank*0x2000 + offset
}

func (m *mapper004) chrOffset(addr uint16) int {
	banks1k := len(m.cart.chrROM) / 0x400
	region := int(addr) / 0x400 // 0..7
	if m.bankSelect&0x80 != 0 {
		region ^= 4 // invert the two 2KiB/four 1KiB halves
	}

	var bank1k int
	switch region {
	case 0:
		bank1k = int(m.bankReg[0]&^1) % banks1k
	case 1:
		bank1k = (int(m.bankReg[0]&^1) + 1) % banks1k
	case 2:
		bank1k = int(m.bankReg[1]&^1) % banks1k
	case 3:
		bank1k = (int(m.bankReg[1]&^1) + 1) % banks1k
	case 4:
		bank1k = int(m.bankReg[2]) % banks1k
	case 5:
		bank1k = int(m.bankReg[3]) % banks1k
	case 6:
		bank1k = int(m.bankReg[4]) % banks1k
	default:
		bank1k = int(m.bankReg[5]) % banks1k
	}
	return bank1k*0x400 + int(addr)%0x400
}

func (m *mapper004) PPURead(addr uint16) uint8 {
	return m.cart.chrROM[m.chrOffset(addr)%len(m.cart.chrROM)]
}

func (m *mapper004) PPUWrite(addr uint16, value uint8) {
	if m.cart.hasCHRRAM {
		m.cart.chrROM[m.chrOffset(addr)%len(m.cart.chrROM)] = value
	}
}

func (m *mapper004) MirrorOverride() (MirrorMode, bool) {
	if m.mirror == 0 {
		return MirrorVertical, true
	}
	return MirrorHorizontal, true
}

// ScanlineTick clocks the IRQ counter. The system calls this once per
// scanline, on all 262 scanlines, as the PPU passes dot 260, whether or not
// rendering is enabled.
func (m *mapper004) ScanlineTick() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mapper004) IRQPending() bool { return m.irqPending }
func (m *mapper004) ClearIRQ()        { m.irqPending = false }
