package overlay

import (
	"image/color"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/position"
	"hoverclock/internal/core/scheduler"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	clockTextSize  = float32(24)
	timerTextSize  = float32(16)
	detailTextSize = float32(12)
	contentPadding = float32(6)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is the floating clock overlay. It owns no state of its own: every
// frame carries the full set of strings, colors and geometry to draw.
type Window struct {
	app    fyne.App
	window fyne.Window

	background   *canvas.Rectangle
	clockLabel   *canvas.Text
	timerLabel   *canvas.Text
	subtextLabel *canvas.Text
	metricLabels map[model.Metric]*canvas.Text

	onDrag    func(deltaX, deltaY float64)
	lastAlpha uint8
}

// New creates the overlay window using the initial configuration for its
// first paint.
func New(app fyne.App, config model.Config) *Window {
	window := app.NewWindow("HoverClock")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	foreground := toNRGBA(config.Foreground)
	background := canvas.NewRectangle(toNRGBA(config.Background))
	background.CornerRadius = 10

	clockLabel := canvas.NewText("--:--:--", foreground)
	clockLabel.Alignment = fyne.TextAlignCenter
	clockLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	clockLabel.TextSize = clockTextSize

	timerLabel := canvas.NewText("", foreground)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Monospace: true}
	timerLabel.TextSize = timerTextSize

	subtextLabel := canvas.NewText("", foreground)
	subtextLabel.Alignment = fyne.TextAlignCenter
	subtextLabel.TextStyle = fyne.TextStyle{Monospace: true}
	subtextLabel.TextSize = detailTextSize

	metricLabels := make(map[model.Metric]*canvas.Text, len(model.AllMetrics()))
	lines := []fyne.CanvasObject{clockLabel, timerLabel, subtextLabel}
	for _, metric := range model.AllMetrics() {
		label := canvas.NewText("", foreground)
		label.Alignment = fyne.TextAlignCenter
		label.TextStyle = fyne.TextStyle{Monospace: true}
		label.TextSize = detailTextSize
		metricLabels[metric] = label
		lines = append(lines, label)
	}

	overlay := &Window{
		app:          app,
		window:       window,
		background:   background,
		clockLabel:   clockLabel,
		timerLabel:   timerLabel,
		subtextLabel: subtextLabel,
		metricLabels: metricLabels,
	}

	area := newDragArea(container.NewVBox(lines...), overlay.handleDrag)
	window.SetContent(container.NewStack(background, area))
	overlay.resizeToScale(config.Scale)

	overlay.lastAlpha = componentByte(config.Background.A)
	overlay.applyNativeOpacity(overlay.lastAlpha)

	return overlay
}

// Show brings the overlay on screen.
func (overlay *Window) Show() {
	overlay.window.Show()
}

// Hide removes the overlay from screen.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// Close tears the window down for shutdown.
func (overlay *Window) Close() {
	overlay.window.Close()
}

// SetOnDrag registers the drag handler. Deltas are reported in screen
// pixels; the caller clamps and persists the resulting position.
func (overlay *Window) SetOnDrag(handler func(deltaX, deltaY float64)) {
	overlay.onDrag = handler
}

// ApplyFrame paints one render frame.
func (overlay *Window) ApplyFrame(frame scheduler.Frame) {
	fyne.Do(func() {
		foreground := toNRGBA(frame.Foreground)

		overlay.background.FillColor = toNRGBA(frame.Background)
		overlay.background.Refresh()

		if alpha := componentByte(frame.Background.A); alpha != overlay.lastAlpha {
			overlay.lastAlpha = alpha
			overlay.applyNativeOpacity(alpha)
		}

		overlay.setLine(overlay.clockLabel, frame.Clock, clockTextSize, frame.Scale, foreground)
		overlay.setLine(overlay.timerLabel, frame.TimerText, timerTextSize, frame.Scale, foreground)
		overlay.setLine(overlay.subtextLabel, frame.Subtext, detailTextSize, frame.Scale, foreground)

		texts := make(map[model.Metric]string, len(frame.Metrics))
		for _, line := range frame.Metrics {
			texts[line.Metric] = line.Text
		}
		for metric, label := range overlay.metricLabels {
			overlay.setLine(label, texts[metric], detailTextSize, frame.Scale, foreground)
		}

		overlay.resizeToScale(frame.Scale)
	})
}

func (overlay *Window) setLine(label *canvas.Text, text string, baseSize float32, scale float64, foreground color.NRGBA) {
	label.Text = text
	label.TextSize = baseSize * float32(scale)
	label.Color = foreground
	if text == "" {
		label.Hide()
	} else {
		label.Show()
		label.Refresh()
	}
}

func (overlay *Window) resizeToScale(scale float64) {
	width, height := position.OverlaySize(scale)
	size := fyne.NewSize(float32(width), float32(height)+contentPadding)

	minSize := overlay.window.Content().MinSize()
	if minSize.Width > size.Width {
		size.Width = minSize.Width
	}
	if minSize.Height > size.Height {
		size.Height = minSize.Height
	}
	overlay.window.Resize(size)
}

func (overlay *Window) handleDrag(deltaX, deltaY float32) {
	if overlay.onDrag != nil {
		overlay.onDrag(float64(deltaX), float64(deltaY))
	}
}

func toNRGBA(value model.Color) color.NRGBA {
	return color.NRGBA{
		R: componentByte(value.R),
		G: componentByte(value.G),
		B: componentByte(value.B),
		A: componentByte(value.A),
	}
}

func componentByte(component float64) uint8 {
	if component < 0 {
		component = 0
	}
	if component > 1 {
		component = 1
	}
	return uint8(component*255 + 0.5)
}

// dragArea forwards pointer drags so the whole overlay can be moved.
type dragArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onDrag  func(deltaX, deltaY float32)
}

func newDragArea(content fyne.CanvasObject, onDrag func(deltaX, deltaY float32)) *dragArea {
	area := &dragArea{content: content, onDrag: onDrag}
	area.ExtendBaseWidget(area)
	return area
}

func (area *dragArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(area.content)
}

func (area *dragArea) Dragged(event *fyne.DragEvent) {
	if area.onDrag != nil {
		area.onDrag(event.Dragged.DX, event.Dragged.DY)
	}
}

func (area *dragArea) DragEnd() {}
