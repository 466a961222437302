//go:build darwin

package sampler

import (
	"fmt"
	"os/exec"
)

type ioregProbe struct{}

func newGPUProbe() GPUProbe {
	return ioregProbe{}
}

func (ioregProbe) Utilization() (float64, error) {
	output, err := exec.Command("ioreg", "-r", "-d", "1", "-w", "0", "-c", "IOAccelerator").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseIORegUtilization(string(output))
}
