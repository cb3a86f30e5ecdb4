package core

// Color represents a foreground color for a screen cell.
// Values are semantic; the platform maps them to ANSI 256-color codes.
type Color uint8

// Palette used by the grid view.
const (
	ColorDefault Color = iota
	ColorGrid          // dim grid dots
	ColorRunner        // runner glyph
	ColorNode          // data nodes
	ColorDrone         // drone body
	ColorHealthHigh    // drone health > 1/2
	ColorHealthMid     // drone health > 1/4
	ColorHealthLow     // drone health <= 1/4
	ColorProjectile    // bullets
	ColorHUD           // status bar text
	ColorNotice        // transient banner
	ColorOverlay       // overlay boxes and titles
	ColorDim           // secondary text
)
