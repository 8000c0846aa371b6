package gpst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLeapTableAscending(t *testing.T) {
	require.Len(t, leapSeconds, 18)
	for i := 1; i < len(leapSeconds); i++ {
		require.Greater(t, leapSeconds[i], leapSeconds[i-1])
	}
}

func TestNumLeaps(t *testing.T) {
	for _, c := range []struct {
		name       string
		gpsSeconds int64
		want       int64
	}{
		{"epoch", 0, 0},
		{"negative", -1000, 0},
		{"before first", 46828799, 0},
		{"exactly first", 46828800, 1},
		{"after first", 46828801, 1},
		{"exactly tenth", 457056009, 10},
		{"exactly last", 1167264017, 18},
		{"after last", 2000000000, 18},
	} {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, numLeaps(c.gpsSeconds))
		})
	}
}

func TestNumLeapsMonotonic(t *testing.T) {
	var prev int64
	for s := int64(0); s <= 1300000000; s += 86400 * 30 {
		n := numLeaps(s)
		require.GreaterOrEqual(t, n, prev)
		require.LessOrEqual(t, n, int64(len(leapSeconds)))
		prev = n
	}
}

func TestLeapTableDates(t *testing.T) {
	// Each entry, shifted back by the leap seconds accumulated before it,
	// lands on a UTC month boundary (leap seconds are inserted at the end
	// of June or December).
	for i, ls := range leapSeconds {
		ct := time.Unix(Epoch+ls-int64(i), 0).UTC()
		require.Zero(t, ct.Hour(), "entry %d", i)
		require.Zero(t, ct.Minute(), "entry %d", i)
		require.Zero(t, ct.Second(), "entry %d", i)
		require.Equal(t, 1, ct.Day(), "entry %d", i)
		month := ct.Month()
		require.True(t, month == time.January || month == time.July, "entry %d", i)
	}
}
