package espnow

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/espnow/limits"
	"github.com/opd-ai/espnow/peer"
	"github.com/opd-ai/espnow/ring"
	"github.com/opd-ai/espnow/wifi"
)

type received struct {
	addr    []byte
	payload []byte
}

// collect installs a receive handler that copies frames out of the pool
// slots and signals on every delivery.
func collect(node *ESPNow) (*[]received, *sync.Mutex, chan struct{}) {
	var mu sync.Mutex
	var got []received
	delivered := make(chan struct{}, 4*ring.Depth)

	node.OnReceive(func(addr, payload []byte) {
		mu.Lock()
		got = append(got, received{
			addr:    append([]byte(nil), addr...),
			payload: append([]byte(nil), payload...),
		})
		mu.Unlock()
		delivered <- struct{}{}
	})
	return &got, &mu, delivered
}

func waitDeliveries(t *testing.T, delivered chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestReceivePipelinePreservesOrderAndBytes(t *testing.T) {
	node, sim := newTestNode(t, wifi.StationActive)
	got, mu, delivered := collect(node)

	for i := 0; i < ring.Depth; i++ {
		sim.InjectReceive(facadeAddr(byte(i)), []byte(fmt.Sprintf("frame-%02d", i)))
	}
	waitDeliveries(t, delivered, ring.Depth)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, ring.Depth)
	for i, r := range *got {
		assert.Equal(t, facadeAddr(byte(i)), r.addr, "frame %d address", i)
		assert.Equal(t, []byte(fmt.Sprintf("frame-%02d", i)), r.payload, "frame %d payload", i)
	}
}

func TestReceiveOverwritesOldestWhenConsumerLags(t *testing.T) {
	node, sim := newTestNode(t, wifi.StationActive)

	gate := make(chan struct{})
	var mu sync.Mutex
	var got [][]byte
	delivered := make(chan struct{}, 4*ring.Depth)
	first := true

	node.OnReceive(func(_, payload []byte) {
		if first {
			first = false
			<-gate
		}
		mu.Lock()
		got = append(got, append([]byte(nil), payload...))
		mu.Unlock()
		delivered <- struct{}{}
	})

	// Depth+1 frames before the consumer makes progress: the last one wraps
	// onto the first slot while its task is still queued (the consumer is
	// parked inside task one).
	for i := 0; i <= ring.Depth; i++ {
		sim.InjectReceive(facadeAddr(1), []byte(fmt.Sprintf("frame-%02d", i)))
	}
	close(gate)
	waitDeliveries(t, delivered, ring.Depth+1)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, ring.Depth+1)

	// The first task's slot was overwritten by the wrapped frame, so the
	// consumer sees the newest payload where the oldest used to be, and sees
	// it again when the wrapped task runs.
	newest := []byte(fmt.Sprintf("frame-%02d", ring.Depth))
	assert.Equal(t, newest, got[0], "oldest slot must carry the overwriting frame")
	assert.Equal(t, newest, got[ring.Depth])
	for i := 1; i < ring.Depth; i++ {
		assert.Equal(t, []byte(fmt.Sprintf("frame-%02d", i)), got[i], "frame %d", i)
	}
}

func TestReceiveWithoutHandlerIsDropped(t *testing.T) {
	node, sim := newTestNode(t, wifi.StationActive)

	// No handler installed: frames vanish with no side effect.
	sim.InjectReceive(facadeAddr(1), []byte("ignored"))
	assert.Equal(t, uint64(0), node.Stats().RejectedFrames)

	// Installing a handler afterwards must not replay the dropped frame.
	got, mu, delivered := collect(node)
	sim.InjectReceive(facadeAddr(2), []byte("seen"))
	waitDeliveries(t, delivered, 1)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1)
	assert.Equal(t, []byte("seen"), (*got)[0].payload)
}

func TestReceiveClearedHandlerStopsDelivery(t *testing.T) {
	node, sim := newTestNode(t, wifi.StationActive)
	got, mu, delivered := collect(node)

	sim.InjectReceive(facadeAddr(1), []byte("one"))
	waitDeliveries(t, delivered, 1)

	node.OnReceive(nil)
	sim.InjectReceive(facadeAddr(1), []byte("two"))

	// Give a wrongly-queued task time to surface before asserting.
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1)
}

func TestReceiveOversizedFrameRejectedWhole(t *testing.T) {
	node, sim := newTestNode(t, wifi.StationActive)
	got, mu, delivered := collect(node)

	big := bytes.Repeat([]byte{0xAA}, limits.MaxPayload+1)
	sim.InjectReceive(facadeAddr(1), big)
	sim.InjectReceive(facadeAddr(2), []byte("good"))
	waitDeliveries(t, delivered, 1)

	assert.Equal(t, uint64(1), node.Stats().RejectedFrames)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1)
	assert.Equal(t, []byte("good"), (*got)[0].payload)
}

func TestSendStatusEvents(t *testing.T) {
	node, sim := newTestNode(t, wifi.StationActive)
	require.NoError(t, node.AddPeer(facadeAddr(1), nil))
	require.NoError(t, node.AddPeer(facadeAddr(2), nil))

	type status struct {
		addr peer.Addr
		ok   bool
	}
	events := make(chan status, 8)
	node.OnSendStatus(func(addr peer.Addr, ok bool) {
		events <- status{addr: addr, ok: ok}
	})

	require.NoError(t, node.Send(facadeAddr(1), []byte("hello")))

	sim.FailTransmitTo(mustAddr(t, facadeAddr(2)), fmt.Errorf("jammed"))
	require.Error(t, node.Send(facadeAddr(2), []byte("hello")))

	first := recvStatus(t, events)
	assert.Equal(t, mustAddr(t, facadeAddr(1)), first.addr)
	assert.True(t, first.ok)

	second := recvStatus(t, events)
	assert.Equal(t, mustAddr(t, facadeAddr(2)), second.addr)
	assert.False(t, second.ok)
}

func mustAddr(t *testing.T, b []byte) peer.Addr {
	t.Helper()
	a, err := peer.ParseAddr(b)
	require.NoError(t, err)
	return a
}

func recvStatus[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for status event")
		panic("unreachable")
	}
}
