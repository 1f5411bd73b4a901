package seatmap

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Columns are the six seat letters of every row, window to window.
var Columns = []string{"A", "B", "C", "D", "E", "F"}

var ErrInvalidFormat = errors.New("invalid seat number format")

var labelRegex = regexp.MustCompile(`^(\d+)([A-F])$`)

// ParseLabel splits a seat label such as "12C" into its row and column.
func ParseLabel(label string) (int, string, error) {
	m := labelRegex.FindStringSubmatch(label)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidFormat, label)
	}

	row, err := strconv.Atoi(m[1])
	if err != nil || row < 1 {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidFormat, label)
	}

	return row, m[2], nil
}

// FormatLabel is the inverse of ParseLabel.
func FormatLabel(row int, column string) string {
	return strconv.Itoa(row) + column
}
