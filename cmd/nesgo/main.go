// Command nesgo is a cycle-accurate NES emulator.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/nescore/nesgo/internal/cartridge"
	"github.com/nescore/nesgo/internal/system"
	"github.com/nescore/nesgo/internal/version"
	"github.com/nescore/nesgo/internal/video"
)

var (
	scale    int
	mute     bool
	headless bool
	frames   int
)

func main() {
	root := &cobra.Command{
		Use:   "nesgo <rom-file>",
		Short: "nesgo runs NES ROMs with a cycle-accurate CPU/PPU/APU core",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().IntVar(&scale, "scale", 3, "integer window scale factor")
	root.Flags().BoolVar(&mute, "mute", false, "disable audio output")
	root.Flags().BoolVar(&headless, "headless", false, "run a fixed number of frames with no window and exit")
	root.Flags().IntVar(&frames, "frames", 600, "frames to run before exiting in --headless mode")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintBuildInfo()
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cart, err := cartridge.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	sys := system.New(cart)

	if headless {
		return runHeadless(sys)
	}

	game := video.NewGame(sys, scale, mute)
	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("nesgo - " + args[0])
	return ebiten.RunGame(game)
}

// runHeadless runs the emulation loop on its own goroutine so an interrupt
// can cut a run short without leaving the System mid-batch: a flag checked
// between frames, and a channel the worker closes on its way out.
func runHeadless(sys *system.System) error {
	var stopping atomic.Bool
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < frames && !stopping.Load(); i++ {
			sys.RunFrame()
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	select {
	case <-done:
	case <-interrupt:
		stopping.Store(true)
		<-done
	}
	signal.Stop(interrupt)

	fmt.Printf("ran %d frames (%d CPU cycles)\n", sys.FrameCount(), sys.CycleCount())
	return nil
}
