package position

import "hoverclock/internal/core/model"

// Base overlay geometry at scale 1.0, and the default inset from the
// top-right screen corner.
const (
	BaseWidth  = 200.0
	BaseHeight = 44.0
	Inset      = 20.0
)

// Bounds is a screen's visible frame in pixels.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// OverlaySize returns the overlay bounding box for the given scale.
func OverlaySize(scale float64) (width, height float64) {
	return BaseWidth * scale, BaseHeight * scale
}

// Clamp constrains point so the overlay bounding box at the given scale lies
// fully within screen. When the overlay is larger than the screen the
// top-left edge wins.
func Clamp(point model.Point, scale float64, screen Bounds) model.Point {
	width, height := OverlaySize(scale)

	maxX := screen.X + screen.Width - width
	maxY := screen.Y + screen.Height - height

	if point.X > maxX {
		point.X = maxX
	}
	if point.Y > maxY {
		point.Y = maxY
	}
	if point.X < screen.X {
		point.X = screen.X
	}
	if point.Y < screen.Y {
		point.Y = screen.Y
	}
	return point
}

// Default returns the placement used before any position has been persisted:
// a fixed inset from the top-right corner.
func Default(screen Bounds, scale float64) model.Point {
	width, _ := OverlaySize(scale)
	return Clamp(model.Point{
		X: screen.X + screen.Width - width - Inset,
		Y: screen.Y + Inset,
	}, scale, screen)
}

// Resolve maps an optional persisted position to a concrete on-screen point.
func Resolve(persisted *model.Point, scale float64, screen Bounds) model.Point {
	if persisted == nil {
		return Default(screen, scale)
	}
	return Clamp(*persisted, scale, screen)
}
