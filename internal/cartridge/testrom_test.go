package cartridge

import "bytes"

// buildINES assembles a minimal iNES image in memory for use as test input
// to Load. prgBanks is in 16KiB units, chrBanks in 8KiB units (0 selects
// CHR-RAM). mapperID is split across flags6/flags7 the way a real header
// would encode it.
func buildINES(mapperID uint8, prgBanks, chrBanks uint8, flags6Extra uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	buf.WriteByte((mapperID << 4) | flags6Extra)
	buf.WriteByte(mapperID & 0xF0)
	buf.Write(make([]byte, 8)) // PRG-RAM size, TV system, padding

	prg := make([]byte, int(prgBanks)*0x4000)
	for i := range prg {
		prg[i] = uint8(i) + uint8(i>>13) // each 8KiB bank starts with its own index
	}
	buf.Write(prg)

	if chrBanks > 0 {
		chr := make([]byte, int(chrBanks)*0x2000)
		for i := range chr {
			chr[i] = uint8(i ^ 0xFF)
		}
		buf.Write(chr)
	}

	return buf.Bytes()
}

func mustLoad(data []byte) *Cartridge {
	cart, err := Load(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return cart
}
