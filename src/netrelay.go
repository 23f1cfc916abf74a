package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Fan decoded packets out to any number of connected TCP
 *		clients, and advertise the relay over mDNS/DNS-SD so LAN
 *		clients can find it without a hardcoded host:port.
 *
 * Description:	Most people have typed in enough IP addresses and ports by
 *		now, and would rather just select an available decoder that
 *		is automatically discovered on the local network. This uses
 *		the pure-Go github.com/brutella/dnssd package for
 *		cross-platform mDNS/DNS-SD announcement without requiring
 *		any system daemon or C library dependencies, the same
 *		rationale Dire Wolf's own KISS-over-TCP discovery gives.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

const relayServiceType = "_framesync-relay._tcp"

// relayFrame is one JSON object per decoded frame, written one-per-line to
// every connected relay client.
type relayFrame struct {
	HeaderValid  bool    `json:"header_valid"`
	Header       []byte  `json:"header"`
	PayloadValid bool    `json:"payload_valid"`
	Payload      []byte  `json:"payload"`
	RSSI         float64 `json:"rssi"`
	CFO          float64 `json:"cfo"`
}

// PacketRelay fans decoded packets out to connected TCP clients as
// newline-delimited JSON, and optionally announces itself via DNS-SD.
type PacketRelay struct {
	mu      sync.Mutex
	clients map[net.Conn]struct{}

	listener net.Listener
}

// NewPacketRelay starts listening on addr (e.g. ":7654") for relay clients.
func NewPacketRelay(addr string) (*PacketRelay, error) {
	ln, err := listenReusable(addr)
	if err != nil {
		return nil, err
	}

	r := &PacketRelay{
		clients:  make(map[net.Conn]struct{}),
		listener: ln,
	}
	go r.acceptLoop()
	return r, nil
}

// listenReusable opens a TCP listener with SO_REUSEADDR set, the
// idiomatic way to allow fast rebinds during development.
func listenReusable(addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			ctrlErr := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if ctrlErr != nil {
				return ctrlErr
			}
			return sockErr
		},
	}
	return lc.Listen(context.Background(), "tcp", addr)
}

func (r *PacketRelay) acceptLoop() {
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			return
		}

		r.mu.Lock()
		if len(r.clients) >= maxRelayClients {
			r.mu.Unlock()
			log.Warn("relay: rejecting client, already at capacity", "max", maxRelayClients)
			conn.Close()
			continue
		}
		r.clients[conn] = struct{}{}
		r.mu.Unlock()

		log.Info("relay: client connected", "remote", conn.RemoteAddr())
		go r.drainUntilClosed(conn)
	}
}

// drainUntilClosed discards anything a relay client sends, and removes it
// from the fan-out set once its connection closes.
func (r *PacketRelay) drainUntilClosed(conn net.Conn) {
	buf := make([]byte, 256)
	for {
		if _, err := conn.Read(buf); err != nil {
			r.mu.Lock()
			delete(r.clients, conn)
			r.mu.Unlock()
			conn.Close()
			return
		}
	}
}

// Publish writes one decoded frame to every connected client, as a single
// line of JSON.
func (r *PacketRelay) Publish(header []byte, headerValid bool, payload []byte, payloadValid bool, stats FrameStats) {
	line, err := json.Marshal(relayFrame{
		HeaderValid:  headerValid,
		Header:       header,
		PayloadValid: payloadValid,
		Payload:      payload,
		RSSI:         stats.RSSI,
		CFO:          stats.CFO,
	})
	if err != nil {
		log.Error("relay: marshaling frame", "err", err)
		return
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.clients {
		if _, err := conn.Write(line); err != nil {
			log.Warn("relay: write failed, dropping client", "remote", conn.RemoteAddr(), "err", err)
			delete(r.clients, conn)
			conn.Close()
		}
	}
}

// Close stops accepting new clients and closes all existing connections.
func (r *PacketRelay) Close() error {
	err := r.listener.Close()
	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.clients {
		conn.Close()
		delete(r.clients, conn)
	}
	return err
}

// Announce advertises the relay over mDNS/DNS-SD under relayServiceType,
// using name (or a hostname-derived default if name is empty).
func Announce(name string, port int) error {
	if name == "" {
		name = defaultServiceName()
	}

	cfg := dnssd.Config{ //nolint:exhaustruct
		Name: name,
		Type: relayServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return err
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return err
	}

	if _, err := rp.Add(sv); err != nil {
		return err
	}

	log.Info("relay: announcing via DNS-SD", "port", port, "name", name)

	go func() {
		if err := rp.Respond(context.Background()); err != nil {
			log.Error("relay: DNS-SD responder error", "err", err)
		}
	}()
	return nil
}

// defaultServiceName returns "framesync relay on <hostname>", or just
// "framesync relay" if the hostname cannot be obtained.
func defaultServiceName() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "framesync relay"
	}
	hostname, _, _ = strings.Cut(hostname, ".")
	return "framesync relay on " + hostname
}
