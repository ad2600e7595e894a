package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which the date is refreshed. The Date header has a precision
// of one second, so it's enough.
const Resolution = 500 * time.Millisecond

var (
	zoneGMT = time.FixedZone("GMT", 0)
	date    atomic.Pointer[string]
)

// Date returns the current time formatted for the Date header, e.g.
// Fri, 31 Dec 1999 23:59:59 GMT. The value is refreshed in background every Resolution.
func Date() string {
	return *date.Load()
}

func refresh() {
	formatted := time.Now().In(zoneGMT).Format(time.RFC1123)
	date.Store(&formatted)
}

func init() {
	// the goroutine may not start immediately, so the first value must be there already
	refresh()

	go func() {
		for {
			time.Sleep(Resolution)
			refresh()
		}
	}()
}
