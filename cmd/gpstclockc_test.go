package cmd

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/gnsskit/ggpstclock/gpst"
)

func TestMakeQuery(t *testing.T) {
	query, t0, err := makeQuery()
	if err != nil {
		t.Fatal(err)
	}

	if len(query) != gpstPacket {
		t.Errorf("makeQuery() query length = %d, want %d", len(query), gpstPacket)
	}

	if string(query[0:4]) != "cgps" {
		t.Errorf("makeQuery() magic bytes = %q, want %q", string(query[0:4]), "cgps")
	}

	// The timestamp section must match the reported query time.
	g, err := gpst.FromTime(t0, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := gpst.Unpack(query[4:12]); got != g {
		t.Errorf("makeQuery() timestamp = %+v, want %+v", got, g)
	}
	if nanos := binary.BigEndian.Uint32(query[12:16]); nanos != uint32(t0.Nanosecond()) {
		t.Errorf("makeQuery() nanoseconds = %d, want %d", nanos, t0.Nanosecond())
	}

	// The nonce must not be all zeros.
	allZero := true
	for _, b := range query[16:32] {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("makeQuery() nonce appears to be all zeros")
	}
}

func TestDecodeResp(t *testing.T) {
	instant := time.Date(2005, time.January, 28, 13, 30, 0, 0, time.UTC)
	g, err := gpst.FromTime(instant, true)
	if err != nil {
		t.Fatal(err)
	}

	resp := make([]byte, gpstPacket)
	resp[0] = 's'
	copy(resp[4:12], gpst.Pack(g))
	binary.BigEndian.PutUint32(resp[12:16], 250000000)

	decoded, nanos := decodeResp(resp)
	if decoded != g {
		t.Errorf("decodeResp() timestamp = %+v, want %+v", decoded, g)
	}
	if nanos != 250000000 {
		t.Errorf("decodeResp() nanoseconds = %d, want 250000000", nanos)
	}

	ct, err := respTime(decoded, nanos)
	if err != nil {
		t.Fatal(err)
	}
	if want := instant.Add(250 * time.Millisecond); !ct.Equal(want) {
		t.Errorf("respTime() = %v, want %v", ct, want)
	}
}

func TestParseGPSTClockArgs(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantIP        string
		wantSaveClock bool
		wantErr       bool
	}{
		{"valid IP", []string{"192.168.1.1"}, "192.168.1.1", false, false},
		{"valid IP with saveclock", []string{"10.0.0.1", "saveclock"}, "10.0.0.1", true, false},
		{"valid IP with other arg", []string{"127.0.0.1", "other"}, "127.0.0.1", false, false},
		{"invalid IP", []string{"invalid"}, "", false, true},
		{"no arguments", []string{}, "", false, true},
		{"too many arguments", []string{"192.168.1.1", "arg1", "arg2"}, "", false, true},
		{"IPv6 address", []string{"2001:db8::1"}, "2001:db8::1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIP, gotSaveClock, err := parseGPSTClockArgs(tt.args)

			if (err != nil) != tt.wantErr {
				t.Errorf("parseGPSTClockArgs() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if gotIP.String() != tt.wantIP {
					t.Errorf("parseGPSTClockArgs() IP = %v, want %v", gotIP, tt.wantIP)
				}
				if gotSaveClock != tt.wantSaveClock {
					t.Errorf("parseGPSTClockArgs() saveClock = %v, want %v", gotSaveClock, tt.wantSaveClock)
				}
			}
		})
	}
}
