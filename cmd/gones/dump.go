package main

import (
	"fmt"
	"io"

	"github.com/bdwalton/gones/nes"
)

// dumpWidth is the number of bytes printed per row.
const dumpWidth = 16

// dumpConsole prints CPU registers followed by a hex dump of the PRG
// ROM window and the CHR pattern tables, reading through the same
// buses the emulated hardware uses. A bus error at any one address
// prints "??" at that position rather than aborting the dump.
func dumpConsole(w io.Writer, c *nes.Console) {
	s := c.CPUState()
	fmt.Fprintf(w, "\nCPU registers\n")
	fmt.Fprintf(w, "A:%02X X:%02X Y:%02X SP:%02X PC:%04X P:%02X\n", s.A, s.X, s.Y, s.SP, s.PC, s.Status)

	dumpRange(w, "CPU PRG ROM ($8000-$FFFF)", c.ReadCPUMemory, 0x8000, 0xFFFF)
	dumpRange(w, "PPU pattern tables ($0000-$1FFF)", c.ReadPPUMemory, 0x0000, 0x1FFF)
}

// dumpRange prints [start, end] (inclusive) of whatever read reaches,
// dumpWidth bytes per row, substituting "??" for any address that
// returns a bus error instead of aborting.
func dumpRange(w io.Writer, label string, read func(uint16) (uint8, error), start, end int) {
	fmt.Fprintf(w, "\n%s\n", label)
	for addr := start; addr <= end; addr++ {
		if addr%dumpWidth == 0 {
			fmt.Fprintf(w, "\n%04X:", addr)
		}
		v, err := read(uint16(addr))
		if err != nil {
			fmt.Fprint(w, " ??")
			continue
		}
		fmt.Fprintf(w, " %02X", v)
	}
	fmt.Fprintln(w)
}
