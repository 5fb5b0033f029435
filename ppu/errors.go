package ppu

import "fmt"

// IllegalReadError marks a read of a write-only register offset.
type IllegalReadError struct{ Offset uint16 }

func (e IllegalReadError) Error() string {
	return fmt.Sprintf("ppu: illegal read of register offset %d", e.Offset)
}

// IllegalWriteError marks a write of a read-only register offset.
type IllegalWriteError struct{ Offset uint16 }

func (e IllegalWriteError) Error() string {
	return fmt.Sprintf("ppu: illegal write to register offset %d", e.Offset)
}
