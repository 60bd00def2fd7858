// Package memory implements the CPU and PPU address-space fabric: RAM,
// nametable/palette VRAM, register dispatch, mirroring, and the open-bus
// latch that unmapped or write-only addresses fall back to.
package memory

import "github.com/nescore/nesgo/internal/cartridge"

// PPUInterface is the slice of the PPU the CPU bus needs: register access
// by mirrored index (0-7). Satisfied structurally by *ppu.PPU, which this
// package does not import to avoid a dependency cycle (the PPU package
// imports PPUMemory from here).
type PPUInterface interface {
	ReadRegister(reg uint8) uint8
	WriteRegister(reg uint8, value uint8)
}

// APUInterface is the slice of the APU the CPU bus needs.
type APUInterface interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// InputInterface is satisfied by *input.InputState.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is satisfied by *cartridge.Cartridge.
type CartridgeInterface interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, value uint8)
}

// Memory is the CPU's 16-bit address space: 2 KiB of internal RAM, the PPU
// and APU register windows, the controller ports, and the cartridge.
type Memory struct {
	ram [0x0800]uint8

	ppu   PPUInterface
	apu   APUInterface
	input InputInterface
	cart  CartridgeInterface

	dmaTrigger func(page uint8)

	openBus uint8
}

func New(ppu PPUInterface, apu APUInterface, in InputInterface, cart CartridgeInterface) *Memory {
	return &Memory{ppu: ppu, apu: apu, input: in, cart: cart}
}

// SetDMATrigger installs the callback invoked on a write to 0x4014. The
// actual 256-byte transfer is driven cycle-by-cycle by the system package,
// not synchronously here.
func (m *Memory) SetDMATrigger(fn func(page uint8)) {
	m.dmaTrigger = fn
}

// Read performs a CPU bus read, updating the open-bus latch with whatever
// value is observed (including the ones this read itself returns).
func (m *Memory) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = m.ram[addr&0x07FF]
	case addr < 0x4000:
		reg := uint8(addr & 7)
		switch reg {
		case 2, 4, 7:
			v = m.ppu.ReadRegister(reg)
		default: // write-only PPU registers
			v = m.openBus
		}
	case addr == 0x4015:
		// The APU doesn't drive bit 5; it floats to the last bus value.
		v = (m.apu.ReadRegister(addr) &^ 0x20) | (m.openBus & 0x20)
	case addr == 0x4016:
		v = (m.input.Read(addr) & 0x01) | (m.openBus & 0xE0)
	case addr == 0x4017:
		v = (m.input.Read(addr) & 0x01) | (m.openBus & 0xE0)
	case addr >= 0x4020:
		if value, ok := m.cart.CPURead(addr); ok {
			v = value
		} else {
			v = m.openBus
		}
	default:
		// $4000-$4013 are write-only; $4018-$401F are unused test registers.
		v = m.openBus
	}
	m.openBus = v
	return v
}

func (m *Memory) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ram[addr&0x07FF] = value
	case addr < 0x4000:
		m.ppu.WriteRegister(uint8(addr&7), value)
	case addr == 0x4014:
		if m.dmaTrigger != nil {
			m.dmaTrigger(value)
		}
	case addr == 0x4016:
		m.input.Write(addr, value)
	case addr < 0x4018:
		// $4000-$4013, $4015, $4017: APU channel/status/frame-counter writes.
		m.apu.WriteRegister(addr, value)
	case addr >= 0x4020:
		m.cart.CPUWrite(addr, value)
	}
	m.openBus = value
}

// Reset clears RAM to its power-up state; ROM and mapper state are
// untouched (the cartridge owns its own Reset).
func (m *Memory) Reset() {
	m.ram = [0x0800]uint8{}
	m.openBus = 0
}

// PPUMemory is the PPU's 14-bit address space: cartridge CHR, 2 KiB of
// nametable RAM mirrored across a 4 KiB window, and the 32-byte palette.
type PPUMemory struct {
	vram    [0x1000]uint8 // sized for four-screen; most mirror modes use half
	palette [32]uint8
	cart    *cartridge.Cartridge
}

func NewPPUMemory(cart *cartridge.Cartridge) *PPUMemory {
	return &PPUMemory{cart: cart}
}

func (pm *PPUMemory) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return pm.cart.PPURead(addr)
	case addr < 0x3F00:
		return pm.vram[pm.nametableIndex(addr)]
	default:
		return pm.palette[paletteIndex(addr)]
	}
}

func (pm *PPUMemory) Write(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		pm.cart.PPUWrite(addr, value)
	case addr < 0x3F00:
		pm.vram[pm.nametableIndex(addr)] = value
	default:
		pm.palette[paletteIndex(addr)] = value
	}
}

// nametableIndex resolves a 0x2000-0x3EFF address to a byte offset in vram,
// applying whatever mirror mode the cartridge currently reports (mappers
// 1, 4, and 7 can change it at runtime).
func (pm *PPUMemory) nametableIndex(addr uint16) int {
	off := int(addr-0x2000) % 0x1000
	within := off % 0x400

	switch pm.cart.MirrorMode() {
	case cartridge.MirrorFourScreen:
		return off
	case cartridge.MirrorSingleScreen0:
		return within
	case cartridge.MirrorSingleScreen1:
		return 0x400 + within
	case cartridge.MirrorVertical:
		table := (off >> 10) & 1
		return table*0x400 + within
	default: // Horizontal
		table := (off >> 11) & 1
		return table*0x400 + within
	}
}

// paletteIndex applies the 0x10/0x14/0x18/0x1C -> 0x00/0x04/0x08/0x0C mirror.
func paletteIndex(addr uint16) uint8 {
	idx := addr & 0x1F
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return uint8(idx)
}
