// Package wifi models the radio interface roles a frame can be sent from and
// the bitmask of roles currently active on the hardware.
//
// A peer carries an assigned Interface; whether that interface is usable at
// send time depends on the Mask reported by the ActivitySource at that moment.
// Fallback maps a Mask to the preferred usable interface so the send path can
// repair peers whose assignment went stale after a mode change.
//
// The package is pure: nothing here touches hardware, which keeps the
// fallback arithmetic unit-testable in isolation.
package wifi
