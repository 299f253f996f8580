// Package radio holds the hardware-facing surface of the espnow bridge: the
// driver interfaces the real radio layer implements, the numeric hardware
// error codes and their mapping into Go errors, and the Dispatcher that runs
// the unicast and broadcast send paths.
//
// # Dispatcher
//
// The Dispatcher reconciles each peer's assigned interface against the
// interface set active at call time. A peer whose assignment went stale is
// repaired to the preferred active interface before transmit, and the repair
// is written back to the peer table so future sends skip it. When no
// interface is active at all, the send fails before the table or the radio is
// touched.
//
// # Drivers
//
// Driver abstracts the radio layer: a transmit primitive, key provisioning,
// protocol version, and registration of the two interrupt-delivered sinks.
// Sim is an in-memory Driver for tests and examples; it records transmits,
// reports configurable interface modes, and can inject failures and inbound
// frames.
package radio
