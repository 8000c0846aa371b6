package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/gnsskit/ggpstclock/gpst"
)

// convert performs a one-shot conversion. One argument is an RFC3339
// instant converted to GPST; two arguments are a week number and
// seconds-of-week converted back to civil time.
func convert(args []string, leapSeconds bool) (string, error) {
	switch len(args) {
	case 1:
		t, err := time.Parse(time.RFC3339, args[0])
		if err != nil {
			return "", fmt.Errorf("invalid RFC3339 instant %q: %v", args[0], err)
		}
		g, err := gpst.FromTime(t.UTC(), leapSeconds)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s seconds %d week %d weekseconds %d",
			g, g.Seconds, g.Week, g.WeekSeconds), nil
	case 2:
		week, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid week number %q: %v", args[0], err)
		}
		weekSeconds, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid seconds of week %q: %v", args[1], err)
		}
		ct, err := gpst.TimeFromWeek(week, weekSeconds, leapSeconds)
		if err != nil {
			return "", err
		}
		return ct.Format(time.RFC3339), nil
	default:
		return "", fmt.Errorf("usage: gpstconv [-l=false] <rfc3339> | <week> <weekseconds>")
	}
}

// GPSTConvRun converts between civil time and GPST week/seconds-of-week.
func GPSTConvRun(args []string) int {
	fs := flag.NewFlagSet("gpstconv", flag.ContinueOnError)
	leapSeconds := fs.Bool("l", true, "account for leap seconds")

	if err := fs.Parse(args); err != nil {
		_, _ = fmt.Println(err)
		return 111
	}

	result, err := convert(fs.Args(), *leapSeconds)
	if err != nil {
		_, _ = fmt.Println(err)
		return 111
	}

	_, _ = fmt.Println(result)
	return 0
}
