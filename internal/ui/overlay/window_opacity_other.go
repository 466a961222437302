//go:build !windows

package overlay

// Window translucency comes from the background rectangle's alpha on
// platforms that composite splash windows natively.
func (overlay *Window) applyNativeOpacity(alpha uint8) {}
