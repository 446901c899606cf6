//go:build !ebiten

package ui

// Painter is a no-op placeholder for headless builds.
type Painter struct{}

// NewPainter returns nil in the headless build.
func NewPainter() *Painter { return nil }
