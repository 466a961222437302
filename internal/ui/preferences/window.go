package preferences

import (
	"fmt"

	"hoverclock/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI. The tray menu covers the common
// actions; this window exposes the full set in one place.
type Window struct {
	window fyne.Window
	config model.Config
	onSave func(model.Config)

	scale        *widget.Slider
	scaleValue   *widget.Label
	showSeconds  *widget.Check
	showSubtext  *widget.Check
	metricChecks map[model.Metric]*widget.Check
	bgAlpha      *widget.Slider
}

// New creates a preferences window seeded from config.
func New(app fyne.App, config model.Config, onSave func(model.Config)) *Window {
	window := app.NewWindow("HoverClock Settings")

	scale := widget.NewSlider(model.ScaleMin, model.ScaleMax)
	scale.Step = model.ScaleStep
	scale.Value = config.Scale
	scaleValue := widget.NewLabel(formatScale(config.Scale))
	scale.OnChanged = func(value float64) {
		scaleValue.SetText(formatScale(model.SnapScale(value)))
	}

	showSeconds := widget.NewCheck("Show seconds", nil)
	showSeconds.SetChecked(config.ShowSeconds)

	showSubtext := widget.NewCheck("Show clock while a timer runs", nil)
	showSubtext.SetChecked(config.ShowTimeSubtext)

	metricLabels := map[model.Metric]string{
		model.MetricNetwork: "Network throughput",
		model.MetricCPU:     "CPU usage",
		model.MetricMemory:  "Memory usage",
		model.MetricGPU:     "GPU usage",
	}
	metricChecks := make(map[model.Metric]*widget.Check, len(metricLabels))
	var metricRows []fyne.CanvasObject
	for _, metric := range model.AllMetrics() {
		check := widget.NewCheck(metricLabels[metric], nil)
		check.SetChecked(config.MetricEnabled(metric))
		metricChecks[metric] = check
		metricRows = append(metricRows, check)
	}

	bgAlpha := widget.NewSlider(0.2, 0.95)
	bgAlpha.Step = 0.05
	bgAlpha.Value = config.Background.A

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Scale"), scaleValue),
		scale,
		showSeconds,
		showSubtext,
		widget.NewLabel("Background opacity"),
		bgAlpha,
		widget.NewLabelWithStyle("Readouts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(metricRows...),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 460))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:       window,
		config:       config,
		onSave:       onSave,
		scale:        scale,
		scaleValue:   scaleValue,
		showSeconds:  showSeconds,
		showSubtext:  showSubtext,
		metricChecks: metricChecks,
		bgAlpha:      bgAlpha,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	prefs.scale.Value = config.Scale
	prefs.scale.Refresh()
	prefs.scaleValue.SetText(formatScale(config.Scale))
	prefs.showSeconds.SetChecked(config.ShowSeconds)
	prefs.showSubtext.SetChecked(config.ShowTimeSubtext)
	for metric, check := range prefs.metricChecks {
		check.SetChecked(config.MetricEnabled(metric))
	}
	prefs.bgAlpha.Value = config.Background.A
	prefs.bgAlpha.Refresh()
}

func (prefs *Window) handleSave() {
	config := prefs.config.Clone()

	config.Scale = model.SnapScale(prefs.scale.Value)
	config.ShowSeconds = prefs.showSeconds.Checked
	config.ShowTimeSubtext = prefs.showSubtext.Checked
	config.Background.A = prefs.bgAlpha.Value
	for metric, check := range prefs.metricChecks {
		if check.Checked {
			config.EnabledMetrics[metric] = true
		} else {
			delete(config.EnabledMetrics, metric)
		}
	}

	prefs.config = config
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}

func formatScale(scale float64) string {
	return fmt.Sprintf("%.2fx", scale)
}
