package chain

import "fmt"

func errWrongLength(field string, want, got int) error {
	return fmt.Errorf("%s: %w (want %d bytes, got %d)", field, ErrCorruption, want, got)
}
