// Package ppu implements the NES Picture Processing Unit (2C02): register
// dispatch, the background tile shift-register pipeline, sprite evaluation
// (with the overflow flag set on a ninth in-range sprite), and vblank/NMI
// timing.
package ppu

import "github.com/nescore/nesgo/internal/memory"

// PPU is the 2C02 core. Step is called once per PPU cycle (dot); on NTSC
// there are three dots per CPU cycle, so the system package calls Step
// three times per CPU cycle.
type PPU struct {
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002
	oamAddr uint8 // $2003

	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address / address latch
	x uint8  // fine X scroll (3 bits)
	w bool   // write toggle ($2005/$2006 share it)

	readBuffer uint8 // buffered $2007 read

	oam          [256]uint8
	secondaryOAM [32]uint8 // up to 8 sprites x 4 bytes
	spriteCount  int
	spriteZeroInSecondary bool

	spritePatternLow  [8]uint8
	spritePatternHigh [8]uint8
	spriteAttr        [8]uint8
	spriteX           [8]uint8

	// background fetch pipeline
	bgPatternLow, bgPatternHigh uint16
	bgAttrLow, bgAttrHigh       uint16
	nextTileID, nextAttr        uint8
	nextPatternLow, nextPatternHigh uint8

	memory *memory.PPUMemory

	scanline int // -1 (pre-render) through 260
	cycle    int // 0 through 340
	frame    uint64
	oddFrame bool

	sprite0Hit     bool
	spriteOverflow bool

	backgroundEnabled bool
	spritesEnabled    bool

	nmiCallback           func()
	frameCompleteCallback func()

	frameBuffer [256 * 240]uint32
}

func New() *PPU {
	return &PPU{scanline: -1}
}

func (p *PPU) Reset() {
	*p = PPU{scanline: -1, memory: p.memory, nmiCallback: p.nmiCallback, frameCompleteCallback: p.frameCompleteCallback}
	p.status = 0xA0
}

func (p *PPU) SetMemory(m *memory.PPUMemory)                { p.memory = m }
func (p *PPU) SetNMICallback(cb func())                      { p.nmiCallback = cb }
func (p *PPU) SetFrameCompleteCallback(cb func())             { p.frameCompleteCallback = cb }
func (p *PPU) GetFrameBuffer() [256 * 240]uint32              { return p.frameBuffer }
func (p *PPU) GetFrameCount() uint64                          { return p.frame }
func (p *PPU) GetScanline() int                               { return p.scanline }
func (p *PPU) GetCycle() int                                  { return p.cycle }
func (p *PPU) IsVBlank() bool                                 { return p.status&0x80 != 0 }

// ReadRegister handles a CPU read of $2000-$2007 (already demuxed to 0-7).
func (p *PPU) ReadRegister(reg uint8) uint8 {
	switch reg {
	case 2: // PPUSTATUS
		v := p.status
		p.status &^= 0x80 // clear VBL flag on read
		p.w = false
		return v
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		return p.readPPUData()
	default: // write-only registers: open bus, handled by the memory bus
		return 0
	}
}

func (p *PPU) WriteRegister(reg uint8, value uint8) {
	switch reg {
	case 0: // PPUCTRL
		p.ctrl = value
		p.t = (p.t &^ 0x0C00) | (uint16(value&0x03) << 10)
	case 1: // PPUMASK
		p.mask = value
		p.backgroundEnabled = value&0x08 != 0
		p.spritesEnabled = value&0x10 != 0
	case 3: // OAMADDR
		p.oamAddr = value
	case 4: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(value>>3)
			p.x = value & 0x07
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(value&0x07) << 12) | (uint16(value&0xF8) << 2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(value&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(value)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writePPUData(value)
	}
}

// WriteOAM is used by the OAM DMA state machine.
func (p *PPU) WriteOAM(address uint8, value uint8) { p.oam[address] = value }

func (p *PPU) readPPUData() uint8 {
	addr := p.v & 0x3FFF
	var data uint8
	if addr >= 0x3F00 {
		data = p.memory.Read(addr)
		p.readBuffer = p.memory.Read(addr &^ 0x1000) // underlying nametable byte
	} else {
		data = p.readBuffer
		p.readBuffer = p.memory.Read(addr)
	}
	p.incrementVRAMAddr()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	p.memory.Write(p.v&0x3FFF, value)
	p.incrementVRAMAddr()
}

func (p *PPU) incrementVRAMAddr() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

func (p *PPU) renderingEnabled() bool { return p.backgroundEnabled || p.spritesEnabled }

// Step advances the PPU by exactly one dot.
func (p *PPU) Step() {
	visible := p.scanline >= 0 && p.scanline < 240
	preRender := p.scanline == -1

	if (visible || preRender) && p.renderingEnabled() {
		p.renderTick()
	}

	if visible && p.cycle >= 1 && p.cycle <= 256 {
		p.outputPixel()
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status |= 0x80
		if p.ctrl&0x80 != 0 && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	if preRender && p.cycle == 1 {
		p.status &^= 0xE0 // clear VBL, sprite-0 hit, sprite overflow
		p.sprite0Hit = false
		p.spriteOverflow = false
	}

	if preRender && p.renderingEnabled() && p.cycle >= 280 && p.cycle <= 304 {
		p.copyY()
	}

	// Odd-frame dot skip: the pre-render line's idle dot 339 is dropped when
	// rendering is on, landing directly on the next frame's dot 0.
	lastDot := 340
	if preRender && p.oddFrame && p.renderingEnabled() {
		lastDot = 339
	}

	p.cycle++
	if p.cycle > lastDot {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	}
}

// renderTick drives the background fetch pipeline and sprite evaluation for
// one dot of a visible or pre-render scanline.
func (p *PPU) renderTick() {
	switch {
	case p.cycle >= 1 && p.cycle <= 256:
		p.shiftBackgroundRegisters()
		p.fetchBackgroundByte()
		if p.cycle == 256 {
			p.incrementY()
		}
	case p.cycle == 257:
		p.copyX()
		p.evaluateSprites()
	case p.cycle >= 321 && p.cycle <= 336:
		p.shiftBackgroundRegisters()
		p.fetchBackgroundByte()
	}
}

// fetchBackgroundByte performs the 8-dot nametable/attribute/pattern fetch
// sequence and reloads the shift registers every 8th dot.
func (p *PPU) fetchBackgroundByte() {
	switch p.cycle % 8 {
	case 1:
		ntAddr := 0x2000 | (p.v & 0x0FFF)
		p.nextTileID = p.memory.Read(ntAddr)
	case 3:
		attrAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		attr := p.memory.Read(attrAddr)
		shift := ((p.v >> 4) & 4) | (p.v & 2)
		p.nextAttr = (attr >> shift) & 0x03
	case 5:
		base := p.patternTableBase(p.ctrl&0x10 != 0)
		fineY := (p.v >> 12) & 0x07
		p.nextPatternLow = p.memory.Read(base + uint16(p.nextTileID)*16 + fineY)
	case 7:
		base := p.patternTableBase(p.ctrl&0x10 != 0)
		fineY := (p.v >> 12) & 0x07
		p.nextPatternHigh = p.memory.Read(base + uint16(p.nextTileID)*16 + fineY + 8)
	case 0:
		p.reloadShiftRegisters()
		p.incrementX()
	}
}

func (p *PPU) patternTableBase(high bool) uint16 {
	if high {
		return 0x1000
	}
	return 0x0000
}

func (p *PPU) reloadShiftRegisters() {
	p.bgPatternLow = (p.bgPatternLow &^ 0x00FF) | uint16(p.nextPatternLow)
	p.bgPatternHigh = (p.bgPatternHigh &^ 0x00FF) | uint16(p.nextPatternHigh)
	var loFill, hiFill uint16
	if p.nextAttr&1 != 0 {
		loFill = 0x00FF
	}
	if p.nextAttr&2 != 0 {
		hiFill = 0x00FF
	}
	p.bgAttrLow = (p.bgAttrLow &^ 0x00FF) | loFill
	p.bgAttrHigh = (p.bgAttrHigh &^ 0x00FF) | hiFill
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternLow <<= 1
	p.bgPatternHigh <<= 1
	p.bgAttrLow <<= 1
	p.bgAttrHigh <<= 1
}

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyX() { p.v = (p.v &^ 0x041F) | (p.t & 0x041F) }
func (p *PPU) copyY() { p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0) }

// evaluateSprites scans OAM for the next scanline's visible sprites, keeps
// the first 8, and sets the overflow flag when a ninth in-range sprite is
// found. The hardware's misaligned scan after the eighth sprite is not
// reproduced, so the flag's false positives and false negatives do not
// occur here.
func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	p.spriteZeroInSecondary = false
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}

	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}

	target := p.scanline + 1 // sprites rendered on this scanline were evaluated for scanline+1 during it
	n := 0
	for sprite := 0; sprite < 64; sprite++ {
		y := int(p.oam[sprite*4])
		if target < y+1 || target >= y+1+height {
			continue
		}
		if n < 8 {
			copy(p.secondaryOAM[n*4:n*4+4], p.oam[sprite*4:sprite*4+4])
			if sprite == 0 {
				p.spriteZeroInSecondary = true
			}
			n++
		} else {
			p.spriteOverflow = true
			p.status |= 0x20
			break
		}
	}
	p.spriteCount = n

	for i := 0; i < n; i++ {
		y := int(p.secondaryOAM[i*4])
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		row := target - (y + 1)
		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var base uint16
		if height == 16 {
			base = p.patternTableBase(tile&1 != 0)
			tile &^= 1
			if row >= 8 {
				tile++
				row -= 8
			}
		} else {
			base = p.patternTableBase(p.ctrl&0x08 != 0)
		}

		addr := base + uint16(tile)*16 + uint16(row)
		lo := p.memory.Read(addr)
		hi := p.memory.Read(addr + 8)
		if attr&0x40 != 0 {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.spritePatternLow[i] = lo
		p.spritePatternHigh[i] = hi
		p.spriteAttr[i] = attr
		p.spriteX[i] = x
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// outputPixel composes the background and sprite pixel for the dot that
// just finished shifting and writes it to the frame buffer.
func (p *PPU) outputPixel() {
	x := p.cycle - 1
	y := p.scanline

	bgColorIdx, bgPaletteIdx := uint8(0), uint8(0)
	if p.backgroundEnabled && !(x < 8 && p.mask&0x02 == 0) {
		shift := uint(15 - p.x)
		bit0 := uint8((p.bgPatternLow >> shift) & 1)
		bit1 := uint8((p.bgPatternHigh >> shift) & 1)
		bgColorIdx = (bit1 << 1) | bit0
		attrBit0 := uint8((p.bgAttrLow >> shift) & 1)
		attrBit1 := uint8((p.bgAttrHigh >> shift) & 1)
		bgPaletteIdx = (attrBit1 << 1) | attrBit0
	}

	spColorIdx, spPaletteIdx, spBehind, spIsZero := uint8(0), uint8(0), false, false
	if p.spritesEnabled && !(x < 8 && p.mask&0x04 == 0) {
		for i := 0; i < p.spriteCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			shift := uint(7 - offset)
			bit0 := (p.spritePatternLow[i] >> shift) & 1
			bit1 := (p.spritePatternHigh[i] >> shift) & 1
			idx := (bit1 << 1) | bit0
			if idx == 0 {
				continue
			}
			spColorIdx = idx
			spPaletteIdx = p.spriteAttr[i] & 0x03
			spBehind = p.spriteAttr[i]&0x20 != 0
			spIsZero = i == 0 && p.spriteZeroInSecondary
			break
		}
	}

	if spIsZero && bgColorIdx != 0 && spColorIdx != 0 && !p.sprite0Hit && x != 255 {
		p.sprite0Hit = true
		p.status |= 0x40
	}

	var paletteAddr uint16
	switch {
	case spColorIdx != 0 && (bgColorIdx == 0 || !spBehind):
		paletteAddr = 0x3F10 + uint16(spPaletteIdx)*4 + uint16(spColorIdx)
	case bgColorIdx != 0:
		paletteAddr = 0x3F00 + uint16(bgPaletteIdx)*4 + uint16(bgColorIdx)
	default:
		paletteAddr = 0x3F00
	}

	p.frameBuffer[y*256+x] = NESColorToRGB(p.memory.Read(paletteAddr))
}

// NES 2C02 NTSC palette.
var nesColorPalette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFF29B, 0xBEFBB3, 0xB8F8D8, 0xB8F8F8, 0x000000, 0x000000, 0x000000,
}

func NESColorToRGB(colorIndex uint8) uint32 {
	return nesColorPalette[colorIndex&0x3F]
}
