//go:build windows

package cmd

import (
	"syscall"
	"time"
	"unsafe"
)

var (
	kernel32          = syscall.NewLazyDLL("kernel32.dll")
	procSetSystemTime = kernel32.NewProc("SetSystemTime")
)

// setSystemClockTime sets the system clock to the specified time on
// Windows through SetSystemTime (millisecond precision).
func setSystemClockTime(t time.Time) error {
	utc := t.UTC()

	// SYSTEMTIME structure
	st := [8]uint16{
		uint16(utc.Year()),
		uint16(utc.Month()),
		uint16(utc.Weekday()),
		uint16(utc.Day()),
		uint16(utc.Hour()),
		uint16(utc.Minute()),
		uint16(utc.Second()),
		uint16(utc.Nanosecond() / 1000000), // Milliseconds
	}

	r1, _, err := procSetSystemTime.Call(uintptr(unsafe.Pointer(&st[0])))
	if r1 == 0 {
		return err
	}
	return nil
}

// setSystemClock sets the system clock with the given offset on Windows.
func setSystemClock(offset time.Duration) error {
	t := time.Now().Add(offset)
	return setSystemClockTime(t)
}
