// Package ports allocates free host ports for container forwarding.
package ports

import (
	"fmt"
	"net"
)

// The IANA dynamic/private range.
const (
	RangeStart = 49152
	RangeEnd   = 65535
)

// Allocate returns up to count free ports from the dynamic range.
func Allocate(count int) []int {
	return AllocateRange(count, RangeStart, RangeEnd)
}

// AllocateRange scans [start, end) ascending, bind-probing each port, and
// returns the first count ports that accept an exclusive bind. The probe
// listener is closed immediately, so a returned port can be taken by
// another process before the container binds it; callers accept that race.
// Fewer than count ports are returned only when the range is exhausted.
func AllocateRange(count, start, end int) []int {
	var free []int
	for port := start; port < end && len(free) < count; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		l.Close()
		free = append(free, port)
	}
	return free
}
