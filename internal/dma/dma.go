// Package dma implements the NES's OAM DMA transfer triggered by a write to
// $4014: 256 bytes copied from a CPU page into PPU sprite memory, one byte
// every other CPU cycle, with the CPU off the bus for the duration.
package dma

// OAM tracks a pending or in-flight $4014 transfer. It only tracks request
// and progress state; the actual bus read and OAM write happen in
// internal/system, which is the only place that holds both the CPU bus and
// the PPU's OAM.
//
// The progression (one alignment cycle, then one byte every other cycle,
// two alignment cycles if the transfer starts on an odd CPU cycle) is
// adapted from Artentus/simple-nes's system.rs Dma/System::clock, which
// drives the copy from inside the same per-cycle loop that steps the CPU,
// rather than performing the whole 256-byte copy synchronously and
// separately stalling the CPU for a computed cycle count.
type OAM struct {
	pending bool
	active  bool
	page    uint8

	elapsed int // cycles consumed since Start, including alignment
	align   int // 1 normally, 2 if the transfer started on an odd CPU cycle
}

// Request latches a DMA trigger for the system loop to service on its next
// cycle. A request arriving mid-transfer is dropped: real hardware can't
// restart OAM DMA from $4014 while one is already running, since the CPU is
// off the bus and can't issue the write.
func (d *OAM) Request(page uint8) {
	if d.active {
		return
	}
	d.pending = true
	d.page = page
}

// Pending reports an unserviced request.
func (d *OAM) Pending() bool { return d.pending }

// Page returns the source page for the in-flight or just-requested transfer.
func (d *OAM) Page() uint8 { return d.page }

// Active reports whether a transfer is currently running.
func (d *OAM) Active() bool { return d.active }

// Start begins the transfer. cpuCycles is the CPU cycle count at the moment
// it begins: starting on an odd cycle costs one extra alignment cycle
// before the first byte moves, which is where the well-known 513-vs-514
// total cycle cost comes from.
func (d *OAM) Start(cpuCycles uint64) {
	d.pending = false
	d.active = true
	d.elapsed = 0
	d.align = 1
	if cpuCycles%2 == 1 {
		d.align = 2
	}
}

// Advance accounts for one more CPU cycle having passed while the transfer
// is active. A non-negative return is the OAM-relative byte offset that
// should be copied this cycle; -1 means this cycle was spent aligning or on
// the "get" half of a read/write pair, and nothing moves. The transfer
// completes itself (Active becomes false) once offset 255 has moved.
func (d *OAM) Advance() int {
	d.elapsed++
	if d.elapsed <= d.align {
		return -1
	}
	afterAlign := d.elapsed - d.align
	if afterAlign%2 != 0 {
		return -1 // "get" cycle: the byte moves on the following "put" cycle
	}
	offset := afterAlign/2 - 1
	if offset == 255 {
		d.active = false
	}
	return offset
}
