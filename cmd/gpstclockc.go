package cmd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/gnsskit/ggpstclock/gpst"
)

// makeQuery builds a GPSTCLOCK request carrying the client's current
// GPST timestamp and a random nonce.
func makeQuery() (query []byte, t0 time.Time, err error) {
	query = make([]byte, gpstPacket)
	copy(query[0:], []byte("cgps"))

	t0 = time.Now()
	g, err := gpst.FromTime(t0, true)
	if err != nil {
		return nil, time.Time{}, err
	}
	copy(query[4:], gpst.Pack(g))
	binary.BigEndian.PutUint32(query[12:], uint32(t0.Nanosecond()))

	nonce := uuid.New()
	copy(query[16:], nonce[:])
	return query, t0, nil
}

// gpstExchange sends a query and reads the answer, noting the local
// receive time for round-trip accounting.
func gpstExchange(m []byte, c *net.UDPConn) (answer []byte, t1 time.Time, e error) {
	answer = make([]byte, gpstPacket)

	_, err := c.Write(m)
	if err != nil {
		_, _ = fmt.Println(err)
		return answer, time.Time{}, err
	}
	_, err = c.Read(answer)
	t1 = time.Now()
	if err != nil {
		_, _ = fmt.Println(err)
		return answer, time.Time{}, err
	}
	return answer, t1, nil
}

// decodeResp extracts the server timestamp from a response.
func decodeResp(resp []byte) (gpst.Gpst, uint32) {
	return gpst.Unpack(resp[4:12]), binary.BigEndian.Uint32(resp[12:16])
}

// respTime converts a decoded response to a civil instant.
func respTime(g gpst.Gpst, nanos uint32) (time.Time, error) {
	ct, err := gpst.TimeFromSeconds(g.Seconds, true)
	if err != nil {
		return time.Time{}, err
	}
	return ct.Add(time.Duration(nanos) * time.Nanosecond), nil
}

// parseGPSTClockArgs parses command line arguments for the GPST clock client.
func parseGPSTClockArgs(args []string) (servIP net.IP, saveClock bool, err error) {
	switch len(args) {
	case 1:
		servIP = net.ParseIP(args[0])
		if servIP == nil {
			return nil, false, fmt.Errorf("invalid IP address: %s", args[0])
		}
	case 2:
		servIP = net.ParseIP(args[0])
		if servIP == nil {
			return nil, false, fmt.Errorf("invalid IP address: %s", args[0])
		}
		saveClock = args[1] == "saveclock"
	default:
		return nil, false, errors.New("unknown number of arguments. Please use 1 or 2")
	}
	return servIP, saveClock, nil
}

// measureServerTime performs time synchronization measurements with the server.
func measureServerTime(conn *net.UDPConn) (time.Time, error) {
	var totalroundtrip time.Duration

	for i := 0; i < 10; i++ {
		q, t0, err := makeQuery()
		if err != nil {
			return time.Time{}, err
		}

		_, t1, e := gpstExchange(q, conn)
		if e != nil {
			_, _ = fmt.Println(e)
			continue
		}

		totalroundtrip += t1.Sub(t0)
	}

	qf, _, err := makeQuery()
	if err != nil {
		return time.Time{}, err
	}
	resp, _, e := gpstExchange(qf, conn)
	if e != nil {
		return time.Time{}, e
	}

	avgrtt := totalroundtrip / 20 // we have 10 roundtrips.
	g, nanos := decodeResp(resp)
	serverSays, err := respTime(g, nanos)
	if err != nil {
		return time.Time{}, err
	}
	return serverSays.Add(avgrtt), nil
}

// GPSTClockCRun implements the gpstclockc client functionality for GPST
// time synchronization.
func GPSTClockCRun(args []string) int {
	servIP, saveClock, err := parseGPSTClockArgs(args)
	if err != nil {
		_, _ = fmt.Println(err)
		return 111
	}
	serverAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(servIP.String(), "4015"))
	if err != nil {
		_, _ = fmt.Println(err)
		return 111
	}
	conn, err := net.DialUDP("udp", nil, serverAddr)
	if err != nil {
		_, _ = fmt.Println(err)
		return 111
	}
	defer func() { _ = conn.Close() }()

	_, _ = fmt.Println("before: ", time.Now().UTC())
	serverSays, err := measureServerTime(conn)
	if err != nil {
		_, _ = fmt.Println(err)
		return 111
	}

	if saveClock {
		err = setSystemClockTime(serverSays)
		if err != nil {
			_, _ = fmt.Println(err)
			return 111
		}
	}

	if g, gerr := gpst.FromTime(serverSays, true); gerr == nil {
		_, _ = fmt.Println("server GPST: ", g)
	}
	_, _ = fmt.Println("after: ", serverSays)
	return 0
}
