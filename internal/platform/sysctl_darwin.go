//go:build darwin

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// productVersion reads the marketing version ("17.4", "14.2.1") from the kernel.
// Available on macOS 10.13.4+ and iOS 11+.
func productVersion() (string, error) {
	v, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return "", fmt.Errorf("%w: sysctl kern.osproductversion: %v", ErrUnavailable, err)
	}
	return v, nil
}
