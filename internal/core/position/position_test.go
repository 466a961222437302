package position_test

import (
	"testing"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/position"

	"github.com/stretchr/testify/assert"
)

var screen = position.Bounds{Width: 1920, Height: 1080}

func insideScreen(t *testing.T, point model.Point, scale float64) {
	t.Helper()
	width, height := position.OverlaySize(scale)
	assert.GreaterOrEqual(t, point.X, screen.X)
	assert.GreaterOrEqual(t, point.Y, screen.Y)
	assert.LessOrEqual(t, point.X+width, screen.X+screen.Width)
	assert.LessOrEqual(t, point.Y+height, screen.Y+screen.Height)
}

func TestClampKeepsBoxOnScreen(t *testing.T) {
	points := []model.Point{
		{X: -500, Y: -500},
		{X: 5000, Y: 5000},
		{X: 1900, Y: 10},
		{X: 0, Y: 1079},
		{X: 960, Y: 540},
	}
	scales := []float64{0.5, 1.0, 2.25, 4.0}

	for _, scale := range scales {
		for _, point := range points {
			insideScreen(t, position.Clamp(point, scale, screen), scale)
		}
	}
}

func TestClampIsIdentityInsideBounds(t *testing.T) {
	point := model.Point{X: 100, Y: 100}
	assert.Equal(t, point, position.Clamp(point, 1.0, screen))
}

func TestDefaultIsTopRightInset(t *testing.T) {
	point := position.Default(screen, 1.0)
	assert.Equal(t, screen.Width-position.BaseWidth-position.Inset, point.X)
	assert.Equal(t, position.Inset, point.Y)
	insideScreen(t, point, 1.0)
}

func TestDefaultStaysOnScreenAtMaxScale(t *testing.T) {
	insideScreen(t, position.Default(screen, 4.0), 4.0)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, position.Default(screen, 1.0), position.Resolve(nil, 1.0, screen))

	persisted := &model.Point{X: 5000, Y: -40}
	resolved := position.Resolve(persisted, 2.0, screen)
	insideScreen(t, resolved, 2.0)
	// The persisted value itself is left untouched.
	assert.Equal(t, model.Point{X: 5000, Y: -40}, *persisted)
}

func TestClampOffsetScreenOrigin(t *testing.T) {
	secondary := position.Bounds{X: 1920, Y: 200, Width: 1280, Height: 800}
	point := position.Clamp(model.Point{X: 0, Y: 0}, 1.0, secondary)
	assert.Equal(t, secondary.X, point.X)
	assert.Equal(t, secondary.Y, point.Y)
}
