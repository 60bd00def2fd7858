package cartridge

import "testing"

func TestMapper000NROM128Mirrors16KiB(t *testing.T) {
	cart := mustLoad(buildINES(0, 1, 1, 0))
	a, _ := cart.CPURead(0x8000)
	b, _ := cart.CPURead(0xC000)
	if a != b {
		t.Fatalf("NROM-128 should mirror the single 16KiB bank: %#x != %#x", a, b)
	}
}

func TestMapper000NROM256DoesNotMirror(t *testing.T) {
	cart := mustLoad(buildINES(0, 2, 1, 0))
	a, _ := cart.CPURead(0x8000)
	b, _ := cart.CPURead(0xC000)
	if a == b {
		t.Fatal("NROM-256 should not mirror its two distinct 16KiB banks")
	}
}

func TestMapper000PRGRAMReadWrite(t *testing.T) {
	cart := mustLoad(buildINES(0, 1, 1, 0))
	cart.CPUWrite(0x6000, 0x42)
	v, ok := cart.CPURead(0x6000)
	if !ok || v != 0x42 {
		t.Fatalf("PRG-RAM round trip failed: got %#x, ok=%v", v, ok)
	}
}

func TestMapper000IgnoresROMWrites(t *testing.T) {
	cart := mustLoad(buildINES(0, 1, 1, 0))
	before, _ := cart.CPURead(0x8000)
	cart.CPUWrite(0x8000, before+1)
	after, _ := cart.CPURead(0x8000)
	if before != after {
		t.Fatal("NROM has no registers; writes to ROM space must be ignored")
	}
}

func TestMapper000BelowPRGRAMIsOpenBus(t *testing.T) {
	cart := mustLoad(buildINES(0, 1, 1, 0))
	if _, ok := cart.CPURead(0x4020); ok {
		t.Fatal("expected open-bus (ok=false) below PRG-RAM window")
	}
}
