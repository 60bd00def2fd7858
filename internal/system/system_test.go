package system

import (
	"bytes"
	"testing"

	"github.com/nescore/nesgo/internal/cartridge"
)

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

func newTestSystem(t *testing.T) *System {
	t.Helper()
	cart, err := cartridge.Load(bytes.NewReader(buildINES(0, 1, 0)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(cart)
}

func TestNewResetsCPUProgramCounterFromVector(t *testing.T) {
	data := buildINES(0, 1, 0)
	data[16+0x3FFC] = 0x00 // reset vector at $FFFC/$FFFD -> $8000
	data[16+0x3FFD] = 0x80
	cart, err := cartridge.Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := New(cart)
	if s.CPU.PCValue() != 0x8000 {
		t.Fatalf("PC = %#x, want 0x8000 loaded from reset vector", s.CPU.PCValue())
	}
}

func TestClockAdvancesPPUThreeDotsPerCPUCycle(t *testing.T) {
	s := newTestSystem(t)
	startCycle := s.PPU.GetCycle()
	s.Clock()
	gotDelta := (s.PPU.GetCycle() - startCycle + 341) % 341
	if gotDelta != 3 {
		t.Fatalf("PPU advanced %d dots, want 3", gotDelta)
	}
	if s.CycleCount() != 1 {
		t.Fatalf("CycleCount = %d, want 1", s.CycleCount())
	}
}

func TestOAMDMACopiesPageIntoPPUAndStallsCPU(t *testing.T) {
	s := newTestSystem(t)
	s.Mem.Write(0x0200, 0x42)
	s.Mem.Write(0x4014, 0x02) // trigger DMA from page 2

	before := s.CPU.PCValue()
	cycles := 0
	for s.oam.Pending() || s.oam.Active() || cycles == 0 {
		s.Clock()
		cycles++
		if cycles > 600 {
			t.Fatal("DMA never completed")
		}
	}
	if s.CPU.PCValue() != before {
		t.Fatal("expected CPU to be stalled for the entire DMA transfer, not advance")
	}
	if cycles != 513 {
		t.Fatalf("DMA took %d cycles, want 513 (triggered on an even CPU cycle)", cycles)
	}

	oamViaPPU := s.PPU.ReadRegister(4) // OAMDATA at current OAMADDR (0)
	if oamViaPPU != 0x42 {
		t.Fatalf("OAM[0] = %#x, want 0x42 copied from page 2 byte 0", oamViaPPU)
	}
}

func TestSetButtonsRoutesThroughInputToCPUReads(t *testing.T) {
	s := newTestSystem(t)
	s.SetButtons1(0x80) // A pressed (bit 7, shifted out first)
	s.Mem.Write(0x4016, 1)
	s.Mem.Write(0x4016, 0)
	if v := s.Mem.Read(0x4016) & 0x01; v != 1 {
		t.Fatalf("controller 1 first read = %d, want 1 (A pressed)", v)
	}
}
