package sampler

import "fmt"

const rateUnitStep = 1024.0

// FormatRate renders a bytes-per-second value with auto-scaled units.
func FormatRate(bytesPerSecond float64) string {
	if bytesPerSecond < 0 {
		bytesPerSecond = 0
	}
	switch {
	case bytesPerSecond < rateUnitStep:
		return fmt.Sprintf("%.0f B/s", bytesPerSecond)
	case bytesPerSecond < rateUnitStep*rateUnitStep:
		return fmt.Sprintf("%.1f KB/s", bytesPerSecond/rateUnitStep)
	case bytesPerSecond < rateUnitStep*rateUnitStep*rateUnitStep:
		return fmt.Sprintf("%.1f MB/s", bytesPerSecond/(rateUnitStep*rateUnitStep))
	default:
		return fmt.Sprintf("%.1f GB/s", bytesPerSecond/(rateUnitStep*rateUnitStep*rateUnitStep))
	}
}

// FormatPercent renders a utilization percentage.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.0f%%", clampPercent(value))
}

// NetworkLine renders the combined up/down throughput readout.
func (rate Rate) NetworkLine() string {
	return fmt.Sprintf("↑ %s  ↓ %s", FormatRate(rate.Up), FormatRate(rate.Down))
}
