// Command gones runs the NES emulation core against an ebiten-backed
// display and keyboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bdwalton/gones/bus"
	"github.com/bdwalton/gones/nes"
	"github.com/bdwalton/gones/nesrom"
	"github.com/bdwalton/gones/ppu"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile = flag.String("rom", "", "Path to an iNES (.nes) ROM to run.")
	dump    = flag.Bool("dump", false, "Parse the ROM, print its header summary, CPU registers and a memory dump, and exit without running it.")
)

// keys maps the eight NES controller bits to a keyboard key, in the
// same A/B/Select/Start/Up/Down/Left/Right order as bus.Button*.
var keys = []ebiten.Key{
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

var buttonBits = []uint8{
	bus.ButtonA,
	bus.ButtonB,
	bus.ButtonSelect,
	bus.ButtonStart,
	bus.ButtonUp,
	bus.ButtonDown,
	bus.ButtonLeft,
	bus.ButtonRight,
}

// game adapts *nes.Console to the ebiten.Game interface. Emulation
// runs on its own goroutine at a fixed 60Hz; Update only polls the
// keyboard and Draw only blits whatever frame the core last rendered,
// matching the core's single-threaded, host-driven control loop.
type game struct {
	console *nes.Console
}

func (g *game) Update() error {
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			g.console.PressButton(0, buttonBits[i])
		} else {
			g.console.ReleaseButton(0, buttonBits[i])
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.console.Frame()
	for y := 0; y < ppu.FrameHeight; y++ {
		for x := 0; x < ppu.FrameWidth; x++ {
			idx := frame[y*ppu.FrameWidth+x] & 0x3F
			rgb := ppu.SystemPalette[idx]
			screen.Set(x, y, rgbColor{rgb[0], rgb[1], rgb[2]})
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth, ppu.FrameHeight
}

// runEmulation drives EmulateFrame at roughly 60Hz until ctx is
// cancelled. It never overlaps calls to EmulateFrame, satisfying the
// core's non-reentrancy requirement.
func runEmulation(ctx context.Context, c *nes.Console) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.EmulateFrame(); err != nil {
				glog.Errorf("gones: frame emulation failed: %v", err)
				return
			}
		}
	}
}

func main() {
	flag.Parse()

	if *romFile == "" {
		glog.Fatalf("gones: -rom is required")
	}

	rom, err := nesrom.New(*romFile)
	if err != nil {
		glog.Fatalf("gones: invalid ROM %q: %v", *romFile, err)
	}

	console, err := nes.New(rom)
	if err != nil {
		glog.Fatalf("gones: couldn't build console: %v", err)
	}

	if *dump {
		fmt.Println(rom)
		dumpConsole(os.Stdout, console)
		os.Exit(0)
	}

	ebiten.SetWindowSize(ppu.FrameWidth*2, ppu.FrameHeight*2)
	ebiten.SetWindowTitle("gones")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	go runEmulation(ctx, console)

	if err := ebiten.RunGame(&game{console: console}); err != nil {
		glog.Errorf("gones: ebiten exited: %v", err)
	}
	cancel()
}

// rgbColor implements color.Color for a palette-derived RGB triple.
type rgbColor struct {
	r, g, b uint8
}

func (c rgbColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = 0xffff
	return
}
