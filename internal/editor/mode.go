// Package editor holds the selection state machine driven by pointer input.
package editor

import "fmt"

// Mode selects which selection tool pointer input drives.
type Mode int

const (
	ModeRectangle Mode = iota
	ModePolygon
)

func (m Mode) String() string {
	return [...]string{"rectangle", "polygon"}[m]
}

// ParseMode maps the metadata mode names back to modes.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "rectangle":
		return ModeRectangle, nil
	case "polygon":
		return ModePolygon, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
