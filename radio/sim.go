package radio

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/espnow/peer"
	"github.com/opd-ai/espnow/wifi"
)

// simProtocolVersion is the protocol version the simulated radio reports.
const simProtocolVersion = 1

// SentFrame is one transmit recorded by a Sim.
type SentFrame struct {
	Addr    peer.Addr
	Payload []byte
	Iface   wifi.Mask
}

// Sim is an in-memory radio driver for tests and examples. It satisfies
// Driver and wifi.ActivitySource: it records every transmit, reports a
// configurable interface mode, injects per-address transmit failures, and
// delivers inbound frames into the attached sinks the way the interrupt path
// would. Two Sims can be linked so a transmit on one arrives on the other.
type Sim struct {
	mu         sync.Mutex
	mode       wifi.Mask
	primaryKey peer.Key
	keySet     bool
	recvSink   ReceiveSink
	statusSink StatusSink
	sent       []SentFrame
	failures   map[peer.Addr]error
	link       *Sim
	localAddr  peer.Addr
}

// NewSim creates a Sim reporting the given interface mode.
func NewSim(mode wifi.Mask) *Sim {
	return &Sim{
		mode:     mode,
		failures: make(map[peer.Addr]error),
	}
}

// SetLocalAddr sets the address a linked Sim sees as this node's sender.
func (s *Sim) SetLocalAddr(addr peer.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localAddr = addr
}

// SetMode changes the active interface mode reported to the send path.
func (s *Sim) SetMode(mode wifi.Mask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// ActiveInterfaces implements wifi.ActivitySource.
func (s *Sim) ActiveInterfaces() wifi.Mask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Link connects two Sims both ways so each delivers transmits to the other.
func (s *Sim) Link(other *Sim) {
	s.mu.Lock()
	s.link = other
	s.mu.Unlock()

	other.mu.Lock()
	other.link = s
	other.mu.Unlock()
}

// FailTransmitTo makes every transmit to addr fail with err until cleared
// with a nil err.
func (s *Sim) FailTransmitTo(addr peer.Addr, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, addr)
		return
	}
	s.failures[addr] = err
}

// Transmit implements Transmitter. A successful transmit is recorded, handed
// to the linked Sim if any, and acknowledged through the status sink; a
// failed one is acknowledged with success=false.
func (s *Sim) Transmit(addr peer.Addr, payload []byte) error {
	s.mu.Lock()
	err := s.failures[addr]
	status := s.statusSink
	link := s.link
	local := s.localAddr
	if err == nil {
		s.sent = append(s.sent, SentFrame{
			Addr:    addr,
			Payload: append([]byte(nil), payload...),
			Iface:   s.mode,
		})
	}
	s.mu.Unlock()

	if status != nil {
		status(addr[:], err == nil)
	}
	if err != nil {
		return err
	}
	if link != nil {
		link.InjectReceive(local[:], payload)
	}
	return nil
}

// InjectReceive delivers an inbound frame into the attached receive sink,
// mimicking the radio interrupt. Frames arriving with no sink attached are
// dropped, as on real hardware before registration.
func (s *Sim) InjectReceive(senderAddr, payload []byte) {
	s.mu.Lock()
	sink := s.recvSink
	s.mu.Unlock()

	if sink == nil {
		return
	}
	sink(senderAddr, payload)
}

// SetPrimaryKey implements Driver.
func (s *Sim) SetPrimaryKey(key peer.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primaryKey = key
	s.keySet = true

	logrus.WithFields(logrus.Fields{
		"function": "Sim.SetPrimaryKey",
	}).Debug("Primary key provisioned to simulated radio")
	return nil
}

// PrimaryKey returns the last provisioned primary key and whether one was set.
func (s *Sim) PrimaryKey() (peer.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.primaryKey, s.keySet
}

// Version implements Driver.
func (s *Sim) Version() (uint32, error) {
	return simProtocolVersion, nil
}

// AttachSinks implements Driver.
func (s *Sim) AttachSinks(recv ReceiveSink, status StatusSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recvSink = recv
	s.statusSink = status
}

// DetachSinks implements Driver.
func (s *Sim) DetachSinks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recvSink = nil
	s.statusSink = nil
}

// Close implements Driver.
func (s *Sim) Close() error {
	s.DetachSinks()
	return nil
}

// Sent returns a copy of every successfully transmitted frame in order.
func (s *Sim) Sent() []SentFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentFrame, len(s.sent))
	copy(out, s.sent)
	return out
}
