package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// isoPeriodPattern matches ISO-8601 periods as the Data API emits them,
// e.g. "PT1H2M30S", "PT45S", "P1DT2H".
var isoPeriodPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParsePeriodSeconds converts an ISO-8601 period string to total seconds.
func ParsePeriodSeconds(period string) (int, error) {
	m := isoPeriodPattern.FindStringSubmatch(period)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO-8601 period %q", period)
	}

	total := 0
	units := []int{86400, 3600, 60, 1}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 period %q", period)
		}
		total += n * unit
	}
	return total, nil
}

// FormatTimestamp renders seconds as MM:SS, or HH:MM:SS once the hour
// component is non-zero. Fractional seconds are truncated.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatPeriod converts an ISO-8601 period straight to the display form.
// Unparseable periods format as zero seconds rather than failing.
func FormatPeriod(period string) string {
	secs, err := ParsePeriodSeconds(period)
	if err != nil {
		secs = 0
	}
	return FormatTimestamp(float64(secs))
}
