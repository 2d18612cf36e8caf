package core

import "time"

// TimeProvider abstracts the clock so expiry and timestamp logic can be
// driven by a fixed time in tests.
type TimeProvider interface {
	Now() time.Time
}
