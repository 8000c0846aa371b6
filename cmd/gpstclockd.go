package cmd

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gnsskit/ggpstclock/gpst"
	"github.com/gnsskit/ggpstclock/gudpd"
)

const defaultPort = ":4015"

var configDir string
var logDir string

// GPSTCLOCK Protocol Specification:
//
// The GPSTCLOCK protocol provides GPS Standard Time timestamps over UDP.
// It follows DJB's simple time protocol design with GPST timestamps
// instead of UTC.
//
// Protocol Details:
//   - Transport: UDP
//   - Default Port: 4015
//   - Message Format: Binary, fixed-length (32 bytes)
//   - Timestamp Format: GPST seconds + nanoseconds (12 bytes)
//
// Request Format (32 bytes):
//   Bytes 0-3:   Magic bytes "cgps" (0x63 0x67 0x70 0x73)
//   Bytes 4-11:  Client GPST seconds (big-endian, leap-adjusted)
//   Bytes 12-15: Client nanoseconds (big-endian)
//   Bytes 16-31: Random nonce (UUID bytes, echoed by the server)
//
// Response Format (32 bytes):
//   Byte  0:     Response marker "s" (0x73)
//   Bytes 1-3:   Unused (copied from request)
//   Bytes 4-11:  Server GPST seconds (big-endian, leap-adjusted)
//   Bytes 12-15: Server nanoseconds (big-endian)
//   Bytes 16-31: Nonce (copied from request)
//
// GPST vs UTC:
//   - GPST is a continuous time scale counted from 1980-01-06 00:00:00 UTC
//   - GPST does not insert leap seconds, so it runs ahead of UTC
//   - Current offset: GPST = UTC + 18 seconds (as of the last table update)
//
// Nanoseconds ride on the wire only for round-trip math; the conversion
// core stays whole-second.

const gpstPacket = 32

var responseHeader = []byte("s")

// sendResponse handles GPSTCLOCK protocol responses
func sendResponse(conn *net.UDPConn, _ int, remoteaddr *net.UDPAddr, buf []byte) {
	now := time.Now()
	g, err := gpst.FromTime(now, true)
	if err != nil {
		// System clock earlier than the GPS epoch, nothing sane to serve.
		return
	}

	copy(buf[0:1], responseHeader)
	copy(buf[4:12], gpst.Pack(g))
	binary.BigEndian.PutUint32(buf[12:16], uint32(now.Nanosecond()))
	// Send response - ignore errors for performance (UDP is best-effort anyway)
	_, _ = conn.WriteToUDP(buf[:gpstPacket], remoteaddr)
}

// validateGPSTRequest validates GPSTCLOCK protocol requests
func validateGPSTRequest(config *gudpd.Config) gudpd.RequestValidator {
	return func(n int, buf []byte, remoteIP net.IP) bool {
		if n < gpstPacket || n > config.MaxRequestSize {
			return false
		}
		if buf[0] != 'c' || buf[1] != 'g' || buf[2] != 'p' || buf[3] != 's' {
			return false
		}

		// Check client permissions (this may involve filesystem operations)
		return config.ClientOK(remoteIP)
	}
}

// newDaemonLogger routes daemon output to stdout, or to a rotating log
// file when a log directory is configured.
func newDaemonLogger(dir string) *log.Logger {
	var w io.Writer = os.Stdout
	if dir != "" {
		w = &lumberjack.Logger{
			Filename:   filepath.Join(dir, "gpstclockd.log"),
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	return log.New(w, "", log.LstdFlags)
}

// GPSTClockDRun starts a GPST time server listening on port 4015.
func GPSTClockDRun(args []string) int {
	fs := flag.NewFlagSet("gpstclockd", flag.ContinueOnError)
	fs.StringVar(&configDir, "d", "", "config directory path")
	fs.StringVar(&logDir, "logdir", "", "rotating log directory (default stdout)")

	if err := fs.Parse(args); err != nil {
		_, _ = fmt.Println(err)
		return 111
	}

	logger := newDaemonLogger(logDir)

	config := &gudpd.Config{
		DefaultPort: defaultPort,
		ConfigDir:   configDir,
	}

	server, err := gudpd.NewServer(config, sendResponse, validateGPSTRequest(config))
	if err != nil {
		logger.Println(err)
		return 111
	}
	defer func() { _ = server.Stop() }()

	logger.Printf("GPST time server listening on %s", server.Addr().String())
	server.Start()
	return 0
}
