// Package cartridge implements iNES ROM loading and the NES mapper family.
package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// MirrorMode selects how the 2KiB of nametable RAM is addressed across the
// PPU's 4KiB nametable region.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// Mapper translates CPU/PPU addresses into cartridge storage and owns any
// bank-select registers and scanline IRQ state. Implemented as a closed set
// of concrete types (mapper.go), one per supported id, rather than an open
// hierarchy: the id space is fixed and the methods are hot.
type Mapper interface {
	// CPURead translates a CPU read at addr >= 0x4020. ok is false for
	// addresses the mapper does not claim, letting the bus fall back to
	// open-bus behavior.
	CPURead(addr uint16) (value uint8, ok bool)
	CPUWrite(addr uint16, value uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, value uint8)

	// MirrorOverride reports a mapper-forced mirror mode, if any.
	MirrorOverride() (MirrorMode, bool)

	// ScanlineTick is called by the system once per scanline, on all 262
	// scanlines, as the PPU passes dot 260, whether or not rendering is
	// enabled (mapper 4 uses it for its IRQ counter; other mappers ignore it).
	ScanlineTick()
	IRQPending() bool
	ClearIRQ()

	Reset()
}

// LoadError reports a load-time failure with the offending value attached.
type LoadError struct {
	Reason string
	Value  any
}

func (e *LoadError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("cartridge: %s: %v", e.Reason, e.Value)
	}
	return fmt.Sprintf("cartridge: %s", e.Reason)
}

// Cartridge holds PRG/CHR storage and the mapper instance derived from an
// iNES header. PRG ROM is immutable after load; CHR bytes are mutable only
// when the header declared CHR-RAM (chrBanks == 0).
type Cartridge struct {
	prgROM []uint8
	chrROM []uint8 // CHR ROM, or CHR RAM when hasCHRRAM is set
	mapper Mapper

	mapperID   uint8
	hasCHRRAM  bool
	hasBattery bool
	mirror     MirrorMode // header-declared default, before mapper override
}

type iNESHeader struct {
	Magic      [4]uint8
	PRGBanks   uint8 // 16KiB units
	CHRBanks   uint8 // 8KiB units
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	TVSystem1  uint8
	TVSystem2  uint8
	Padding    [5]uint8
}

// LoadFile reads an iNES image from disk.
func LoadFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Reason: "unreadable file", Value: err}
	}
	defer f.Close()
	return Load(f)
}

// Load parses an already-opened iNES image.
func Load(r io.Reader) (*Cartridge, error) {
	var header iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, &LoadError{Reason: "unreadable header", Value: err}
	}
	if string(header.Magic[:]) != "NES\x1A" {
		return nil, &LoadError{Reason: "bad magic", Value: header.Magic}
	}
	if header.PRGBanks == 0 {
		return nil, &LoadError{Reason: "zero PRG bank count"}
	}

	mapperID := (header.Flags6 >> 4) | (header.Flags7 & 0xF0)
	if !supportedMapper(mapperID) {
		return nil, &LoadError{Reason: "unsupported mapper", Value: mapperID}
	}

	cart := &Cartridge{
		mapperID:   mapperID,
		hasBattery: header.Flags6&0x02 != 0,
	}
	switch {
	case header.Flags6&0x08 != 0:
		cart.mirror = MirrorFourScreen
	case header.Flags6&0x01 != 0:
		cart.mirror = MirrorVertical
	default:
		cart.mirror = MirrorHorizontal
	}

	if header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, &LoadError{Reason: "truncated trainer", Value: err}
		}
	}

	cart.prgROM = make([]uint8, int(header.PRGBanks)*16*1024)
	if _, err := io.ReadFull(r, cart.prgROM); err != nil {
		return nil, &LoadError{Reason: "truncated PRG ROM", Value: err}
	}

	if header.CHRBanks == 0 {
		cart.chrROM = make([]uint8, 8*1024)
		cart.hasCHRRAM = true
	} else {
		cart.chrROM = make([]uint8, int(header.CHRBanks)*8*1024)
		if _, err := io.ReadFull(r, cart.chrROM); err != nil {
			return nil, &LoadError{Reason: "truncated CHR ROM", Value: err}
		}
	}

	cart.mapper = newMapper(mapperID, cart)
	return cart, nil
}

func supportedMapper(id uint8) bool {
	switch id {
	case 0, 1, 2, 3, 4, 7, 66:
		return true
	default:
		return false
	}
}

// CPURead dispatches a CPU-space read (addr expected >= 0x4020) to the
// mapper. A false ok lets the bus supply its open-bus value instead.
func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	return c.mapper.CPURead(addr)
}

func (c *Cartridge) CPUWrite(addr uint16, value uint8) {
	c.mapper.CPUWrite(addr, value)
}

func (c *Cartridge) PPURead(addr uint16) uint8 {
	return c.mapper.PPURead(addr)
}

func (c *Cartridge) PPUWrite(addr uint16, value uint8) {
	c.mapper.PPUWrite(addr, value)
}

// MirrorMode reports the effective mirroring, applying any mapper override.
func (c *Cartridge) MirrorMode() MirrorMode {
	if m, ok := c.mapper.MirrorOverride(); ok {
		return m
	}
	return c.mirror
}

func (c *Cartridge) InterruptPending() bool { return c.mapper.IRQPending() }
func (c *Cartridge) ClearInterrupt()        { c.mapper.ClearIRQ() }
func (c *Cartridge) ScanlineTick()          { c.mapper.ScanlineTick() }

// Reset restores mapper bank-select registers to their power-up state.
// PRG/CHR storage and any mapper-private RAM are preserved.
func (c *Cartridge) Reset() { c.mapper.Reset() }
