package endf

import (
	"fmt"
	"strconv"
	"strings"
)

// parseField parses one 11-character numeric field.  ENDF floats omit the
// exponent marker to save a column ("1.234567+6" means 1.234567e+6), and
// blank fields read as zero.
func parseField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.ContainsAny(s, "eE") {
		return strconv.ParseFloat(s, 64)
	}
	// insert the implied exponent marker before a sign that isn't leading
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '+' || s[i] == '-' {
			return strconv.ParseFloat(s[:i]+"e"+s[i:], 64)
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric field %q", s)
	}
	return v, nil
}
