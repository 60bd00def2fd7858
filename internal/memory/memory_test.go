package memory

import (
	"bytes"
	"testing"

	"github.com/nescore/nesgo/internal/cartridge"
	"github.com/nescore/nesgo/internal/input"
)

type stubPPU struct {
	lastReg   uint8
	lastWrite uint8
	readValue uint8
}

func (s *stubPPU) ReadRegister(reg uint8) uint8 { s.lastReg = reg; return s.readValue }
func (s *stubPPU) WriteRegister(reg uint8, value uint8) {
	s.lastReg = reg
	s.lastWrite = value
}

type stubAPU struct {
	readValue uint8
	lastAddr  uint16
	lastWrite uint8
}

func (s *stubAPU) ReadRegister(addr uint16) uint8 { s.lastAddr = addr; return s.readValue }
func (s *stubAPU) WriteRegister(addr uint16, value uint8) {
	s.lastAddr = addr
	s.lastWrite = value
}

func buildINES(mapperID uint8, prgBanks, chrBanks uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	buf.WriteByte(mapperID << 4)
	buf.WriteByte(mapperID & 0xF0)
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, int(prgBanks)*0x4000))
	if chrBanks > 0 {
		buf.Write(make([]byte, int(chrBanks)*0x2000))
	}
	return buf.Bytes()
}

func newTestMemory(t *testing.T) (*Memory, *stubPPU, *stubAPU) {
	t.Helper()
	cart, err := cartridge.Load(bytes.NewReader(buildINES(0, 2, 1)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ppu := &stubPPU{}
	apu := &stubAPU{}
	in := input.NewInputState()
	return New(ppu, apu, in, cart), ppu, apu
}

func TestRAMMirroring(t *testing.T) {
	m, _, _ := newTestMemory(t)
	m.Write(0x0000, 0x42)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := m.Read(addr); got != 0x42 {
			t.Fatalf("addr %#x: got %#x, want 0x42", addr, got)
		}
	}
}

func TestPPURegisterMirroringEvery8Bytes(t *testing.T) {
	m, ppu, _ := newTestMemory(t)
	m.Write(0x2000, 0x11)
	m.Write(0x2008, 0x22)
	if ppu.lastReg != 0 {
		t.Fatalf("expected register 0, got %d", ppu.lastReg)
	}
	if ppu.lastWrite != 0x22 {
		t.Fatalf("expected last write 0x22, got %#x", ppu.lastWrite)
	}
}

func TestAPUStatusReadMergesOpenBusBit5(t *testing.T) {
	m, _, apu := newTestMemory(t)
	apu.readValue = 0x00
	m.openBus = 0xFF
	v := m.Read(0x4015)
	if v&0x20 == 0 {
		t.Fatalf("expected bit5 to pull from open bus, got %#x", v)
	}
}

func TestControllerReadMergesOpenBusTop3Bits(t *testing.T) {
	m, _, _ := newTestMemory(t)
	m.input.Write(0x4016, 1)
	m.input.Write(0x4016, 0)
	m.openBus = 0xFF
	v := m.Read(0x4016)
	if v&0xE0 != 0xE0 {
		t.Fatalf("expected top 3 bits from open bus, got %#x", v)
	}
}

func TestWriteOnlyAPURegistersReadAsOpenBus(t *testing.T) {
	m, _, _ := newTestMemory(t)
	m.Write(0x1000, 0x77) // sets open bus via RAM write
	v := m.Read(0x4003)
	if v != 0x77 {
		t.Fatalf("expected open bus passthrough, got %#x", v)
	}
}

func TestCartridgeUnclaimedReadIsOpenBus(t *testing.T) {
	m, _, _ := newTestMemory(t)
	m.Write(0x0000, 0x33)
	v := m.Read(0x4020) // below cartridge's PRG-RAM window
	if v != 0x33 {
		t.Fatalf("expected open bus, got %#x", v)
	}
}

func TestDMATriggerCallback(t *testing.T) {
	m, _, _ := newTestMemory(t)
	var triggered uint8
	m.SetDMATrigger(func(page uint8) { triggered = page })
	m.Write(0x4014, 0x07)
	if triggered != 0x07 {
		t.Fatalf("expected DMA trigger with page 0x07, got %#x", triggered)
	}
}

func TestPaletteMirroring(t *testing.T) {
	cart, err := cartridge.Load(bytes.NewReader(buildINES(0, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	pm := NewPPUMemory(cart)
	pm.Write(0x3F10, 0x0A)
	if got := pm.Read(0x3F00); got != 0x0A {
		t.Fatalf("expected 0x3F10 to mirror 0x3F00, got %#x", got)
	}
	pm.Write(0x3F14, 0x0B)
	if got := pm.Read(0x3F04); got != 0x0B {
		t.Fatalf("expected 0x3F14 to mirror 0x3F04, got %#x", got)
	}
}

func TestNametableHorizontalMirroring(t *testing.T) {
	cart, err := cartridge.Load(bytes.NewReader(buildINES(0, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	pm := NewPPUMemory(cart) // header defaults to horizontal mirroring
	pm.Write(0x2000, 0x55)
	if got := pm.Read(0x2400); got != 0x55 {
		t.Fatalf("horizontal: expected table 0 shared by nametables 0/1, got %#x", got)
	}
	pm.Write(0x2800, 0x66)
	if got := pm.Read(0x2000); got == 0x66 {
		t.Fatal("horizontal: nametable 2 must not alias nametable 0")
	}
}
