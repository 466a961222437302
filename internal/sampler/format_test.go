package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, "0 B/s"},
		{512, "512 B/s"},
		{1023, "1023 B/s"},
		{1024, "1.0 KB/s"},
		{1536, "1.5 KB/s"},
		{1024 * 1024, "1.0 MB/s"},
		{2.5 * 1024 * 1024, "2.5 MB/s"},
		{3.25 * 1024 * 1024 * 1024, "3.3 GB/s"},
		{-10, "0 B/s"},
	}
	for _, testCase := range cases {
		assert.Equal(t, testCase.want, FormatRate(testCase.value), "format %v", testCase.value)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42%", FormatPercent(42.4))
	assert.Equal(t, "0%", FormatPercent(-5))
	assert.Equal(t, "100%", FormatPercent(250))
}

func TestNetworkLine(t *testing.T) {
	rate := Rate{Up: 2048, Down: 512}
	assert.Equal(t, "↑ 2.0 KB/s  ↓ 512 B/s", rate.NetworkLine())
}
