// Package gpst converts between civil (UTC) time and GPS Standard Time.
//
// GPS Standard Time is a continuous time scale counted from the GPS epoch,
// 1980-01-06 00:00:00 UTC. It does not observe leap seconds, so it runs
// ahead of UTC by the number of leap seconds inserted since the epoch;
// every conversion takes a flag selecting whether that drift is accounted
// for. GPST is usually written as a week number plus the seconds elapsed
// within that week.
//
// All arithmetic in this package is whole-second arithmetic. Sub-second
// parts of a time.Time are not carried through a conversion.
package gpst

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Epoch is the GPS epoch, 1980-01-06 00:00:00 UTC, in Unix seconds.
const Epoch = 315964800

// SecondsPerWeek is the length of a GPS week in seconds.
const SecondsPerWeek = 604800

// PackedLength is the length of a packed GPST timestamp in bytes.
const PackedLength = 8

// LabelLength is the length of a textual GPST label, "!WWWW:SSSSSS".
const LabelLength = 12

// Gpst holds a GPST timestamp: total seconds since the GPS epoch plus the
// equivalent week number and seconds-of-week breakdown. Seconds always
// equals Week*SecondsPerWeek + WeekSeconds.
type Gpst struct {
	Seconds     int64
	Week        int64
	WeekSeconds int64
}

// FromTime converts a civil instant to GPST. With leapSeconds set, the
// leap seconds inserted into UTC up to the instant are added to the
// elapsed count. Instants earlier than the GPS epoch yield a
// *BeforeEpochError.
func FromTime(t time.Time, leapSeconds bool) (Gpst, error) {
	delta := t.Unix() - Epoch
	if leapSeconds {
		delta += numLeaps(delta)
	}
	if delta < 0 {
		return Gpst{}, &BeforeEpochError{Instant: t}
	}
	week := delta / SecondsPerWeek
	return Gpst{
		Seconds:     delta,
		Week:        week,
		WeekSeconds: delta - week*SecondsPerWeek,
	}, nil
}

// Now returns the current time as GPST.
func Now(leapSeconds bool) (Gpst, error) {
	return FromTime(time.Now(), leapSeconds)
}

// TimeFromSeconds converts elapsed GPST seconds back to a civil instant.
// With leapSeconds set, the leap seconds counted up to that GPST instant
// are subtracted, undoing the adjustment made by FromTime.
func TimeFromSeconds(seconds int64, leapSeconds bool) (time.Time, error) {
	adjusted := seconds
	if leapSeconds {
		adjusted -= numLeaps(seconds)
	}
	if adjusted > math.MaxInt64-Epoch {
		return time.Time{}, &ConversionError{Seconds: seconds, Cause: "unix seconds overflow"}
	}
	return time.Unix(Epoch+adjusted, 0).UTC(), nil
}

// TimeFromWeek converts a GPST week number and seconds-of-week to a civil
// instant. WeekSeconds outside [0, SecondsPerWeek) are not rejected; they
// simply shift the total, so callers needing canonical week boundaries
// must validate upstream.
func TimeFromWeek(week, weekSeconds int64, leapSeconds bool) (time.Time, error) {
	if week > math.MaxInt64/SecondsPerWeek || week < math.MinInt64/SecondsPerWeek {
		return time.Time{}, &ConversionError{Seconds: week, Cause: "week count overflow"}
	}
	total := week * SecondsPerWeek
	if (weekSeconds > 0 && total > math.MaxInt64-weekSeconds) ||
		(weekSeconds < 0 && total < math.MinInt64-weekSeconds) {
		return time.Time{}, &ConversionError{Seconds: total, Cause: "seconds-of-week overflow"}
	}
	return TimeFromSeconds(total+weekSeconds, leapSeconds)
}

// Pack packs a GPST timestamp into a byte slice of PackedLength,
// big-endian elapsed seconds.
func Pack(g Gpst) []byte {
	result := make([]byte, PackedLength)
	x := uint64(g.Seconds)
	for i := PackedLength - 1; i >= 0; i-- {
		result[i] = byte(x & 255)
		x >>= 8
	}
	return result
}

// Unpack unpacks a GPST timestamp from a byte slice of PackedLength.
func Unpack(s []byte) Gpst {
	var x uint64
	for i := 0; i < PackedLength; i++ {
		x <<= 8
		x += uint64(s[i])
	}
	seconds := int64(x)
	week := seconds / SecondsPerWeek
	return Gpst{
		Seconds:     seconds,
		Week:        week,
		WeekSeconds: seconds - week*SecondsPerWeek,
	}
}

// String renders the timestamp as a fixed-width label, "!WWWW:SSSSSS".
func (g Gpst) String() string {
	return fmt.Sprintf("!%04d:%06d", g.Week, g.WeekSeconds)
}

// FromString parses a GPST label produced by String.
func FromString(str string) (Gpst, error) {
	if len(str) < LabelLength || str[0] != '!' || str[5] != ':' {
		return Gpst{}, fmt.Errorf("GPST label %q is not valid, expected !WWWW:SSSSSS", str)
	}
	week, err := strconv.ParseInt(str[1:5], 10, 64)
	if err != nil {
		return Gpst{}, fmt.Errorf("GPST label %q is not valid: %v", str, err)
	}
	weekSeconds, err := strconv.ParseInt(str[6:LabelLength], 10, 64)
	if err != nil {
		return Gpst{}, fmt.Errorf("GPST label %q is not valid: %v", str, err)
	}
	if week < 0 || weekSeconds < 0 || weekSeconds >= SecondsPerWeek {
		return Gpst{}, fmt.Errorf("GPST label %q is not valid, value out of range", str)
	}
	return Gpst{
		Seconds:     week*SecondsPerWeek + weekSeconds,
		Week:        week,
		WeekSeconds: weekSeconds,
	}, nil
}
