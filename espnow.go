package espnow

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/espnow/peer"
	"github.com/opd-ai/espnow/radio"
	"github.com/opd-ai/espnow/ring"
	"github.com/opd-ai/espnow/sched"
	"github.com/opd-ai/espnow/wifi"
)

// Options contains configuration for creating an ESPNow instance.
type Options struct {
	// Driver is the radio layer. Required.
	Driver radio.Driver

	// Activity reports which radio interfaces are active. Optional; when
	// nil, the Driver is used if it implements wifi.ActivitySource.
	Activity wifi.ActivitySource

	// Table backs the peer directory. Optional; defaults to an in-process
	// table capped at the hardware registry size.
	Table peer.Table

	// Scheduler runs deferred handler work. Optional; when nil the instance
	// owns a sched.Runner and manages its lifecycle.
	Scheduler sched.Scheduler

	// QueueDepth sizes the owned scheduler's queue. Ignored when Scheduler
	// is set. Zero selects the default depth.
	QueueDepth int
}

// NewOptions creates a new default Options. The Driver still has to be set.
func NewOptions() *Options {
	return &Options{}
}

// ESPNow is one bridge instance: a peer directory, a receive slot pool, a
// deferred scheduler, and a send dispatcher wired to one radio driver.
type ESPNow struct {
	driver     radio.Driver
	activity   wifi.ActivitySource
	dir        *peer.Directory
	dispatcher *radio.Dispatcher
	pool       *ring.Pool
	scheduler  sched.Scheduler
	owned      *sched.Runner

	// One pre-built task per pool slot so the receive path posts an
	// existing func value instead of allocating a closure per frame.
	tasks [ring.Depth]sched.Task

	callbacks callbackSlots

	mu      sync.RWMutex
	running bool
}

// New creates a started ESPNow instance. Construction order matters: every
// buffer and handler slot exists before interrupt delivery is enabled, so the
// driver's sinks are attached last.
func New(opts *Options) (*ESPNow, error) {
	if opts == nil || opts.Driver == nil {
		return nil, ErrNoDriver
	}

	activity := opts.Activity
	if activity == nil {
		src, ok := opts.Driver.(wifi.ActivitySource)
		if !ok {
			return nil, ErrNoActivitySource
		}
		activity = src
	}

	table := opts.Table
	if table == nil {
		table = peer.NewMemoryTable()
	}

	e := &ESPNow{
		driver:   opts.Driver,
		activity: activity,
		dir:      peer.NewDirectory(table),
		pool:     ring.NewPool(),
	}
	e.dispatcher = radio.NewDispatcher(e.dir, opts.Driver, activity)

	if opts.Scheduler != nil {
		e.scheduler = opts.Scheduler
	} else {
		e.owned = sched.NewRunner(opts.QueueDepth)
		e.scheduler = e.owned
	}

	for i := 0; i < ring.Depth; i++ {
		frame := e.pool.Frame(i)
		e.tasks[i] = func() {
			if cb := e.callbacks.receive(); cb != nil {
				cb(frame.Addr(), frame.Payload())
			}
		}
	}

	if e.owned != nil {
		e.owned.Start()
	}
	e.running = true

	// Interrupt delivery goes live only now that everything it reaches is
	// in place.
	e.driver.AttachSinks(e.handleReceive, e.handleSendStatus)

	logrus.WithFields(logrus.Fields{
		"function":   "New",
		"pool_depth": ring.Depth,
	}).Info("espnow bridge started")

	return e, nil
}

// Kill tears the instance down: interrupt delivery is detached first, then
// the scheduler stops, and only then is the peer table cleared. Subsequent
// operations return ErrNotInitialized. Kill is idempotent.
func (e *ESPNow) Kill() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	e.driver.DetachSinks()
	if e.owned != nil {
		e.owned.Stop()
	}
	e.dir.Clear()
	if err := e.driver.Close(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Kill",
			"error":    err.Error(),
		}).Warn("Radio driver close failed")
	}

	logrus.WithFields(logrus.Fields{
		"function": "Kill",
	}).Info("espnow bridge stopped")
}

// IsRunning reports whether the instance has not been killed.
func (e *ESPNow) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

func (e *ESPNow) checkRunning() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.running {
		return ErrNotInitialized
	}
	return nil
}

// AddPeer registers a peer address. A non-nil key must be exactly 16 bytes
// and marks the peer encrypted.
func (e *ESPNow) AddPeer(addr, key []byte) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	a, err := peer.ParseAddr(addr)
	if err != nil {
		return err
	}
	if key == nil {
		return e.dir.Add(a, nil)
	}
	k, err := peer.ParseKey(key)
	if err != nil {
		return err
	}
	return e.dir.Add(a, &k)
}

// RemovePeer deletes the peer registered under addr.
func (e *ESPNow) RemovePeer(addr []byte) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	a, err := peer.ParseAddr(addr)
	if err != nil {
		return err
	}
	return e.dir.Remove(a)
}

// SetPeerLocalKey installs, replaces, or clears (nil key) the peer's local
// key.
func (e *ESPNow) SetPeerLocalKey(addr, key []byte) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	a, err := peer.ParseAddr(addr)
	if err != nil {
		return err
	}
	if key == nil {
		return e.dir.SetLocalKey(a, nil)
	}
	k, err := peer.ParseKey(key)
	if err != nil {
		return err
	}
	return e.dir.SetLocalKey(a, &k)
}

// SetPrimaryKey provisions the network-wide primary key to the radio layer.
func (e *ESPNow) SetPrimaryKey(key []byte) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	k, err := peer.ParseKey(key)
	if err != nil {
		return err
	}
	return e.driver.SetPrimaryKey(k)
}

// Send transmits payload to the peer registered under addr. A nil addr or
// the broadcast address ff:ff:ff:ff:ff:ff fans the payload out to every
// registered peer.
func (e *ESPNow) Send(addr, payload []byte) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	if addr == nil {
		return e.dispatcher.Broadcast(payload)
	}
	a, err := peer.ParseAddr(addr)
	if err != nil {
		return err
	}
	if a.IsBroadcast() {
		return e.dispatcher.Broadcast(payload)
	}
	return e.dispatcher.Send(a, payload)
}

// PeerCount returns the number of registered peers and how many of them are
// encrypted.
func (e *ESPNow) PeerCount() (total, encrypted int, err error) {
	if err := e.checkRunning(); err != nil {
		return 0, 0, err
	}
	total, encrypted = e.dir.Count()
	return total, encrypted, nil
}

// ProtocolVersion returns the radio layer's protocol version.
func (e *ESPNow) ProtocolVersion() (uint32, error) {
	if err := e.checkRunning(); err != nil {
		return 0, err
	}
	return e.driver.Version()
}

// Stats reports the bridge's drop counters: frames rejected on the receive
// path for violating wire limits, and deferred tasks dropped because the
// owned scheduler's queue was full or stopped.
type Stats struct {
	RejectedFrames uint64
	DroppedTasks   uint64
}

// Stats returns a snapshot of the drop counters.
func (e *ESPNow) Stats() Stats {
	s := Stats{RejectedFrames: e.pool.Rejected()}
	if e.owned != nil {
		s.DroppedTasks = e.owned.Dropped()
	}
	return s
}
