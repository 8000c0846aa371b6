package gpst

import (
	"fmt"
	"time"
)

// BeforeEpochError reports a civil instant earlier than the GPS epoch,
// which has no GPST representation.
type BeforeEpochError struct {
	Instant time.Time
}

func (e *BeforeEpochError) Error() string {
	return fmt.Sprintf("invalid instant for GPST, earlier than GPS epoch: %s",
		e.Instant.UTC().Format(time.RFC3339))
}

// ConversionError reports a GPST value that cannot be represented as a
// civil instant, such as an elapsed-seconds count overflowing the Unix
// timestamp range.
type ConversionError struct {
	Seconds int64
	Cause   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert GPST value %d to civil time: %s", e.Seconds, e.Cause)
}
