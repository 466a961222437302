package sampler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrGPUUnavailable indicates the host platform exposes no GPU utilization.
var ErrGPUUnavailable = errors.New("gpu utilization unavailable")

// GPUProbe reads GPU utilization from a platform diagnostic command.
type GPUProbe interface {
	Utilization() (float64, error)
}

// NewGPUProbe returns the platform-specific probe.
func NewGPUProbe() GPUProbe {
	return newGPUProbe()
}

// parseIORegUtilization extracts "Device Utilization %" from ioreg output on
// macOS. The output is a nested property dump; the value appears as
//
//	"Device Utilization %"=42
//
// inside a PerformanceStatistics dictionary.
func parseIORegUtilization(output string) (float64, error) {
	const key = `"Device Utilization %"`
	index := strings.Index(output, key)
	if index < 0 {
		return 0, fmt.Errorf("parse ioreg output: %w", ErrGPUUnavailable)
	}
	rest := output[index+len(key):]
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "=") {
		return 0, fmt.Errorf("parse ioreg output: missing value: %w", ErrGPUUnavailable)
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	end := strings.IndexFunc(rest, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if end == 0 {
		return 0, fmt.Errorf("parse ioreg output: malformed value: %w", ErrGPUUnavailable)
	}
	if end > 0 {
		rest = rest[:end]
	}

	value, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ioreg utilization %q: %w", rest, ErrGPUUnavailable)
	}
	return value, nil
}

// parseSMIUtilization extracts the first GPU's utilization from
// nvidia-smi --query-gpu=utilization.gpu --format=csv,noheader,nounits
// output, one plain number per line.
func parseSMIUtilization(output string) (float64, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		value, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return 0, fmt.Errorf("parse nvidia-smi utilization %q: %w", line, ErrGPUUnavailable)
		}
		return value, nil
	}
	return 0, fmt.Errorf("parse nvidia-smi output: empty: %w", ErrGPUUnavailable)
}
