package session

import "github.com/cropdeck/cropdeck/internal/editor"

// Record is the JSON metadata stored alongside an exported crop. The
// selection field is a rectangle object for rectangle crops and a
// vertex array for polygon crops.
type Record struct {
	OriginalFileName string           `json:"originalFileName"`
	CropNumber       int              `json:"cropNumber"`
	Mode             string           `json:"mode"`
	Selection        editor.Selection `json:"selection"`
}
