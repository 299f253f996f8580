package wifi

import "fmt"

// Interface identifies the radio interface role a frame is sent from.
type Interface uint8

const (
	// Station is the client-mode interface.
	Station Interface = iota
	// AccessPoint is the access-point-mode interface.
	AccessPoint
)

// String returns a human-readable interface name.
func (i Interface) String() string {
	switch i {
	case Station:
		return "station"
	case AccessPoint:
		return "access-point"
	default:
		return fmt.Sprintf("interface(%d)", uint8(i))
	}
}

// Mask is a bitmask of currently active interfaces. Bit i corresponds to
// Interface(i), so a station-only mode is Mask(1) and a combined
// station/access-point mode is Mask(3). A Mask is a point-in-time snapshot;
// the send path reads a fresh one per call and never caches it.
type Mask uint8

const (
	// StationActive is set when the station interface is up.
	StationActive Mask = 1 << Station
	// AccessPointActive is set when the access-point interface is up.
	AccessPointActive Mask = 1 << AccessPoint
)

// Has reports whether interface i is active in the mask.
func (m Mask) Has(i Interface) bool {
	return m&(1<<i) != 0
}

// Empty reports whether no interface is active.
func (m Mask) Empty() bool {
	return m == 0
}

// Fallback returns the preferred active interface for a mask. The
// access-point role outranks the station role when both are active. The
// second return value is false when no interface is active at all.
func Fallback(m Mask) (Interface, bool) {
	switch {
	case m.Has(AccessPoint):
		return AccessPoint, true
	case m.Has(Station):
		return Station, true
	default:
		return 0, false
	}
}

// ActivitySource reports which interfaces are currently active. The radio
// driver implements this against the live hardware mode.
type ActivitySource interface {
	ActiveInterfaces() Mask
}
