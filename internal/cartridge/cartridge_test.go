package cartridge

import (
	"bytes"
	"testing"
)

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildINES(0, 1, 1, 0)
	data[0] = 'X'
	if _, err := Load(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadRejectsZeroPRGBanks(t *testing.T) {
	data := buildINES(0, 0, 1, 0)
	if _, err := Load(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for zero PRG bank count")
	}
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	data := buildINES(5, 1, 1, 0)
	if _, err := Load(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for unsupported mapper id")
	}
}

func TestLoadTruncatedPRGFails(t *testing.T) {
	data := buildINES(0, 2, 1, 0)
	if _, err := Load(bytes.NewReader(data[:20])); err == nil {
		t.Fatal("expected error for truncated PRG ROM")
	}
}

func TestLoadCHRRAMFallback(t *testing.T) {
	data := buildINES(0, 1, 0, 0)
	cart := mustLoad(data)
	if !cart.hasCHRRAM {
		t.Fatal("expected CHR-RAM fallback when CHRBanks == 0")
	}
	if len(cart.chrROM) != 0x2000 {
		t.Fatalf("expected 8KiB CHR-RAM, got %d bytes", len(cart.chrROM))
	}
}

func TestLoadMirroringFlags(t *testing.T) {
	horizontal := mustLoad(buildINES(0, 1, 1, 0))
	if horizontal.MirrorMode() != MirrorHorizontal {
		t.Fatalf("expected horizontal mirroring, got %v", horizontal.MirrorMode())
	}

	vertical := mustLoad(buildINES(0, 1, 1, 0x01))
	if vertical.MirrorMode() != MirrorVertical {
		t.Fatalf("expected vertical mirroring, got %v", vertical.MirrorMode())
	}

	fourScreen := mustLoad(buildINES(0, 1, 1, 0x08))
	if fourScreen.MirrorMode() != MirrorFourScreen {
		t.Fatalf("expected four-screen mirroring, got %v", fourScreen.MirrorMode())
	}
}

func TestLoadSkipsTrainer(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.WriteByte(0x04) // trainer present
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, 512)) // trainer
	prg := make([]byte, 0x4000)
	prg[0] = 0xAB
	buf.Write(prg)
	buf.Write(make([]byte, 0x2000))

	cart := mustLoad(buf.Bytes())
	v, ok := cart.CPURead(0x8000)
	if !ok || v != 0xAB {
		t.Fatalf("trainer not skipped: got %#x, ok=%v", v, ok)
	}
}

func TestCartridgeRoundTripsResetToMapper(t *testing.T) {
	cart := mustLoad(buildINES(2, 2, 1, 0))
	cart.CPUWrite(0x8000, 7)
	cart.Reset()
	if m := cart.mapper.(*mapper002); m.prgBank != 0 {
		t.Fatalf("Reset did not clear mapper state: %#x", m.prgBank)
	}
}
