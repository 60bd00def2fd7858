// Package system wires the CPU, PPU, APU, and cartridge together on the
// NES's master clock and drives them one CPU cycle at a time: three PPU
// dots and one APU tick per CPU cycle, with OAM DMA and DMC fetches able
// to stall the CPU mid-stream.
package system

import (
	"sync"

	"github.com/nescore/nesgo/internal/apu"
	"github.com/nescore/nesgo/internal/cartridge"
	"github.com/nescore/nesgo/internal/cpu"
	"github.com/nescore/nesgo/internal/dma"
	"github.com/nescore/nesgo/internal/input"
	"github.com/nescore/nesgo/internal/memory"
	"github.com/nescore/nesgo/internal/ppu"
)

// System owns one complete NES: CPU, PPU, APU, the cartridge, and the two
// controller ports, clocked together as real hardware is. The emulation
// goroutine drives it through RunCycles/RunFrame; mu lets a separate
// rendering or audio-callback goroutine safely snapshot state (CopyFrame,
// AudioSamples) without racing the next batch.
type System struct {
	mu sync.Mutex

	CPU   *cpu.CPU
	PPU   *ppu.PPU
	APU   *apu.APU
	Mem   *memory.Memory
	Input *input.InputState
	Cart  *cartridge.Cartridge

	oam dma.OAM

	cpuCycles  uint64
	frameCount uint64
}

// New builds a System around an already-loaded cartridge and resets it to
// power-on state.
func New(cart *cartridge.Cartridge) *System {
	s := &System{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
		Cart:  cart,
	}

	s.Mem = memory.New(s.PPU, s.APU, s.Input, cart)
	s.CPU = cpu.New(s.Mem)

	s.PPU.SetMemory(memory.NewPPUMemory(cart))
	s.PPU.SetNMICallback(func() { s.CPU.SetNMI() })
	s.PPU.SetFrameCompleteCallback(func() { s.frameCount++ })

	s.APU.SetMemory(s.Mem)
	s.APU.SetDMAStallCallback(func(cycles int) { s.CPU.Stall(cycles) })

	s.Mem.SetDMATrigger(func(page uint8) { s.oam.Request(page) })

	s.Reset()
	return s
}

// Reset restores every component to its power-on state.
func (s *System) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CPU.Reset()
	s.PPU.Reset()
	s.Mem.Reset()
	s.APU.Reset()
	s.Input.Reset()
	s.Cart.Reset()
	s.cpuCycles = 0
	s.frameCount = 0
	s.oam = dma.OAM{}
}

// Clock advances the system by one CPU cycle: the OAM DMA transfer (if one
// is pending or in flight), one CPU clock, three PPU dots, and one APU
// tick, in the order real hardware's shared address bus imposes.
func (s *System) Clock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock()
}

func (s *System) clock() {
	if s.oam.Pending() {
		s.oam.Start(s.cpuCycles)
	}

	if s.oam.Active() {
		if offset := s.oam.Advance(); offset >= 0 {
			base := uint16(s.oam.Page()) << 8
			s.PPU.WriteOAM(uint8(offset), s.Mem.Read(base+uint16(offset)))
		}
	} else {
		s.CPU.Clock()
	}
	s.cpuCycles++

	prevScanline, prevCycle := s.PPU.GetScanline(), s.PPU.GetCycle()
	for i := 0; i < 3; i++ {
		s.PPU.Step()
	}
	// Approximates the MMC3 family's PPU-A12-toggle IRQ clock: real
	// hardware ticks on the pattern-table fetch around dot 260 of each
	// scanline, not on a fixed per-scanline callback, but sampling once
	// per scanline at that dot is the standard software approximation.
	if s.PPU.GetScanline() == prevScanline && prevCycle < 260 && s.PPU.GetCycle() >= 260 {
		s.Cart.ScanlineTick()
	}

	s.APU.Step()

	if s.Cart.InterruptPending() || s.APU.GetFrameIRQ() || s.APU.GetDMCIRQ() {
		s.CPU.SetIRQ()
	} else {
		s.CPU.ClearIRQ()
	}
}

// RunCycles advances the system by exactly n CPU cycles as one batch,
// holding the lock for the whole run rather than per cycle.
func (s *System) RunCycles(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.clock()
	}
}

// RunFrame advances the system until a new frame has completed.
func (s *System) RunFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.frameCount + 1
	for s.frameCount < target {
		s.clock()
	}
}

// CopyFrame copies the most recently completed frame into dst as packed
// RGBA8888, row-major, 256x240 (dst must be at least 256*240*4 bytes). It
// locks only long enough to snapshot the frame buffer, so it can safely run
// on a renderer's goroutine while the emulation goroutine is mid-batch.
func (s *System) CopyFrame(dst []byte) {
	s.mu.Lock()
	fb := s.PPU.GetFrameBuffer()
	s.mu.Unlock()

	for i, px := range fb {
		o := i * 4
		dst[o] = byte(px >> 16)
		dst[o+1] = byte(px >> 8)
		dst[o+2] = byte(px)
		dst[o+3] = 0xFF
	}
}

// FrameBuffer returns the most recently completed frame's pixels, one
// packed 0xRRGGBB uint32 per pixel, row-major, 256x240.
func (s *System) FrameBuffer() [256 * 240]uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.PPU.GetFrameBuffer()
}

// AudioSamples drains whatever audio samples the APU has queued since the
// last call.
func (s *System) AudioSamples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.APU.GetSamples()
}

// SetSampleRate configures the APU's output sample rate.
func (s *System) SetSampleRate(rate int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.APU.SetSampleRate(rate)
}

// SetButtons1 sets controller 1's full button state, as an 8-bit mask in
// A/B/Select/Start/Up/Down/Left/Right order.
func (s *System) SetButtons1(buttons uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Input.SetButtons1(buttons)
}

// SetButtons2 sets controller 2's full button state.
func (s *System) SetButtons2(buttons uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Input.SetButtons2(buttons)
}

// FrameCount returns the number of frames completed since reset.
func (s *System) FrameCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameCount
}

// CycleCount returns the number of CPU cycles executed since reset.
func (s *System) CycleCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cpuCycles
}
