// Package gudpd implements the UDP request/response server behind the
// GPST clock daemon. It bounds concurrent responses, rate-limits clients
// per IP and enforces DJB-style clientok access control, so a handler
// only has to encode timestamps.
package gudpd

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// RequestHandler produces the response for a validated request.
type RequestHandler func(conn *net.UDPConn, n int, remoteaddr *net.UDPAddr, buf []byte)

// RequestValidator decides whether a request is well-formed and allowed.
type RequestValidator func(n int, buf []byte, remoteIP net.IP) bool

// Server is a UDP server answering fixed-size clock queries.
type Server struct {
	conn      *net.UDPConn
	handler   RequestHandler
	validator RequestValidator
	responses chan struct{}
	limiter   *limiter
	ctx       context.Context
	cancel    context.CancelFunc
	config    *Config
}

// NewServer binds the configured port and prepares the request loop.
func NewServer(config *Config, handler RequestHandler, validator RequestValidator) (*Server, error) {
	config.applyDefaults()
	port := config.GetPort()

	servAddr, err := net.ResolveUDPAddr("udp", port)
	if err != nil {
		return nil, err
	}

	servConn, err := net.ListenUDP("udp", servAddr)
	if err != nil {
		if strings.Contains(err.Error(), "permission denied") {
			return nil, fmt.Errorf(
				"permission denied binding to port %s - try running as root or use a port >= 1024", port)
		}
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		conn:      servConn,
		handler:   handler,
		validator: validator,
		responses: make(chan struct{}, config.MaxConcurrentResponses),
		limiter:   newLimiter(config.RequestsPerClient, config.RateWindow),
		ctx:       ctx,
		cancel:    cancel,
		config:    config,
	}

	go server.cleanupLoop()

	return server, nil
}

// Start runs the request loop until Stop is called.
func (s *Server) Start() {
	buf := make([]byte, s.config.MaxRequestSize)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		if err := s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
			continue
		}

		n, remoteaddr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			// Deadline expiries are routine; other errors just skip
			// the datagram.
			continue
		}

		s.processRequest(n, remoteaddr, buf)
	}
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	s.cancel()
	return s.conn.Close()
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.conn.LocalAddr()
}

func (s *Server) processRequest(n int, remoteaddr *net.UDPAddr, buf []byte) {
	if !s.limiter.allow(remoteaddr.IP.String()) {
		return
	}

	if !s.validator(n, buf, remoteaddr.IP) {
		return
	}

	// The read buffer is reused by the next iteration, so the response
	// goroutine gets its own copy.
	datagram := make([]byte, n)
	copy(datagram, buf[:n])

	select {
	case s.responses <- struct{}{}:
		go s.respond(n, remoteaddr, datagram)
	default:
		// All response slots busy, drop the request.
	}
}

// respond runs the handler under the response timeout.
func (s *Server) respond(n int, remoteaddr *net.UDPAddr, buf []byte) {
	defer func() { <-s.responses }()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ResponseTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.handler(s.conn, n, remoteaddr, buf)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (s *Server) cleanupLoop() {
	ticker := time.NewTicker(s.config.RateWindow * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.limiter.cleanup()
		case <-s.ctx.Done():
			return
		}
	}
}
