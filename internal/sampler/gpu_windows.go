//go:build windows

package sampler

import (
	"fmt"
	"os/exec"
)

type windowsSMIProbe struct {
	smiPath string
}

type unsupportedGPUProbe struct{}

func newGPUProbe() GPUProbe {
	path, err := exec.LookPath("nvidia-smi")
	if err != nil {
		return unsupportedGPUProbe{}
	}
	return &windowsSMIProbe{smiPath: path}
}

func (probe *windowsSMIProbe) Utilization() (float64, error) {
	output, err := exec.Command(probe.smiPath, "--query-gpu=utilization.gpu", "--format=csv,noheader,nounits").Output()
	if err != nil {
		return 0, fmt.Errorf("nvidia-smi: %w", err)
	}
	return parseSMIUtilization(string(output))
}

func (unsupportedGPUProbe) Utilization() (float64, error) {
	return 0, ErrGPUUnavailable
}
