package utils

import (
	"strconv"
)

// ParseID parses a positive database id from a path or query value.
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
