package cartridge

import "testing"

func TestMapper003SwitchesCHRBank(t *testing.T) {
	cart := mustLoad(buildINES(3, 1, 4, 0))

	cart.CPUWrite(0x8000, 2)
	v := cart.PPURead(0x0000)
	if v != cart.chrROM[2*0x2000] {
		t.Fatalf("expected CHR bank 2 selected, got %#x", v)
	}
}

func TestMapper003PRGIsFixed(t *testing.T) {
	cart := mustLoad(buildINES(3, 1, 2, 0))
	before, _ := cart.CPURead(0x8000)
	cart.CPUWrite(0x8000, 1) // selects CHR bank, must not affect PRG
	after, _ := cart.CPURead(0x8000)
	if before != after {
		t.Fatal("CNROM PRG is fixed; CHR-select writes must not alter it")
	}
}
