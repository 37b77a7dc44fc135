package util

import "fmt"

// Human formats a byte count with binary units.
func Human(n int64) string {
	const unit = 1 << 10
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	v := float64(n)
	for _, suffix := range []string{"KB", "MB", "GB"} {
		v /= unit
		if v < unit || suffix == "GB" {
			return fmt.Sprintf("%.2f %s", v, suffix)
		}
	}

	return fmt.Sprintf("%d B", n)
}
