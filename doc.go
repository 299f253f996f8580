// Package espnow bridges an ESP-NOW style radio peer-to-peer datagram layer
// to normal-context Go code.
//
// Inbound frames and send-status events arrive from the radio driver in
// interrupt context. The bridge copies each frame into a fixed slot pool
// without allocating, then hands it to a deferred FIFO scheduler where the
// registered handler runs. Outbound sends go through a dispatcher that keeps
// each peer's assigned radio interface consistent with the interfaces active
// at send time, repairing stale assignments lazily and failing fast when no
// interface is usable.
//
// Example:
//
//	drv := radio.NewSim(wifi.StationActive)
//
//	node, err := espnow.New(&espnow.Options{Driver: drv})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Kill()
//
//	node.OnReceive(func(senderAddr, payload []byte) {
//	    fmt.Printf("%x: %s\n", senderAddr, payload)
//	})
//
//	addr := []byte{0x24, 0x0a, 0xc4, 0x01, 0x02, 0x03}
//	if err := node.AddPeer(addr, nil); err != nil {
//	    log.Fatal(err)
//	}
//	if err := node.Send(addr, []byte("hello")); err != nil {
//	    log.Fatal(err)
//	}
package espnow
