package core

import "strconv"

// utoa converts an unsigned integer to a string without pulling in fmt
func utoa(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
