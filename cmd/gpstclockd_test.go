package cmd

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/gnsskit/ggpstclock/gpst"
	"github.com/gnsskit/ggpstclock/gudpd"
)

func TestValidateGPSTRequest(t *testing.T) {
	config := &gudpd.Config{
		DefaultPort:    defaultPort,
		MaxRequestSize: 64,
	}
	validator := validateGPSTRequest(config)
	clientIP := net.ParseIP("127.0.0.1")

	valid := make([]byte, gpstPacket)
	copy(valid, []byte("cgps"))

	tests := []struct {
		name string
		n    int
		buf  []byte
		want bool
	}{
		{"valid request", gpstPacket, valid, true},
		{"too short", gpstPacket - 1, valid, false},
		{"too large", 65, valid, false},
		{"wrong magic", gpstPacket, []byte("ctai0000000000000000000000000000"), false},
		{"empty magic", gpstPacket, make([]byte, gpstPacket), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator(tt.n, tt.buf, clientIP); got != tt.want {
				t.Errorf("validator(n=%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestSendResponseFormat(t *testing.T) {
	// Run the handler against a loopback socket and check the reply.
	serverConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = serverConn.Close() }()

	clientConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = clientConn.Close() }()

	request := make([]byte, gpstPacket)
	copy(request, []byte("cgps"))
	for i := 16; i < 32; i++ {
		request[i] = byte(i)
	}

	before, err := gpst.Now(true)
	if err != nil {
		t.Fatal(err)
	}

	sendResponse(serverConn, gpstPacket, clientConn.LocalAddr().(*net.UDPAddr), request)

	answer := make([]byte, gpstPacket)
	_ = clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := clientConn.ReadFromUDP(answer)
	if err != nil {
		t.Fatal(err)
	}

	if n != gpstPacket {
		t.Fatalf("response length = %d, want %d", n, gpstPacket)
	}
	if answer[0] != 's' {
		t.Errorf("response marker = %q, want 's'", answer[0])
	}

	g := gpst.Unpack(answer[4:12])
	if g.Seconds < before.Seconds {
		t.Errorf("server timestamp %d earlier than request time %d", g.Seconds, before.Seconds)
	}
	if nanos := binary.BigEndian.Uint32(answer[12:16]); nanos >= 1000000000 {
		t.Errorf("nanoseconds = %d, want < 1e9", nanos)
	}

	// The nonce must come back untouched.
	for i := 16; i < 32; i++ {
		if answer[i] != byte(i) {
			t.Errorf("nonce byte %d = %d, want %d", i, answer[i], byte(i))
			break
		}
	}
}
