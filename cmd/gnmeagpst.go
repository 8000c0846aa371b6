package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/gnsskit/ggpstclock/gpst"
)

// fixTime builds a UTC instant from RMC date and time-of-day fields.
// Two-digit years at or past 80 fall in the 1900s, matching the GPS era.
func fixTime(d nmea.Date, tod nmea.Time) time.Time {
	year := 2000 + d.YY
	if d.YY >= 80 {
		year = 1900 + d.YY
	}
	return time.Date(year, time.Month(d.MM), d.DD,
		tod.Hour, tod.Minute, tod.Second, tod.Millisecond*1e6, time.UTC)
}

// fixLine turns an RMC sentence into a GPST report line. Non-RMC
// sentences, invalid fixes and parse failures are skipped.
func fixLine(line string, leapSeconds bool) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return "", false
	}

	sentence, err := nmea.Parse(line)
	if err != nil {
		return "", false
	}
	if sentence.DataType() != nmea.TypeRMC {
		return "", false
	}

	m := sentence.(nmea.RMC)
	if !m.Date.Valid || !m.Time.Valid {
		return "", false
	}

	ft := fixTime(m.Date, m.Time)
	g, err := gpst.FromTime(ft, leapSeconds)
	if err != nil {
		return "", false
	}

	return fmt.Sprintf("%s %s week %d weekseconds %d",
		ft.Format(time.RFC3339), g, g.Week, g.WeekSeconds), true
}

// GNMEAGPSTRun reads NMEA sentences from standard input and prints the
// GPST week and seconds-of-week of every RMC fix.
func GNMEAGPSTRun(args []string) int {
	fs := flag.NewFlagSet("gnmeagpst", flag.ContinueOnError)
	leapSeconds := fs.Bool("l", true, "account for leap seconds")

	if err := fs.Parse(args); err != nil {
		_, _ = fmt.Println(err)
		return 111
	}

	in := bufio.NewReader(os.Stdin)
	output := bufio.NewWriter(os.Stdout)

	for {
		line, err := in.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			_, _ = fmt.Println(err)
			return 111
		}

		report, ok := fixLine(line, *leapSeconds)
		if !ok {
			continue
		}
		if _, err := output.WriteString(report + "\n"); err != nil {
			_, _ = fmt.Println(err)
			return 111
		}
		if err := output.Flush(); err != nil {
			_, _ = fmt.Println(err)
			return 111
		}
	}

	return 0
}
