// Package clock supplies commit timestamps and the one true format they
// are rendered in, so the repository core never calls time.Now directly.
package clock

import "time"

// Layout is the commit timestamp format, preserved bit-exactly so log
// output matches across implementations: "EEE MMM dd HH:mm:ss yyyy Z".
const Layout = "Mon Jan 02 15:04:05 2006 -0700"

// Clock is injected into the repository so commit timestamps are
// deterministic under test and so the core never reaches for wall time
// on its own.
type Clock interface {
	Now() time.Time
}

// System is the production Clock, backed by time.Now in the local zone.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Format renders t the way commits store and print their timestamp.
func Format(t time.Time) string {
	return t.Local().Format(Layout)
}

// Epoch is the timestamp the initial commit in every repository carries,
// formatted under the host's local zone offset.
func Epoch() time.Time {
	return time.Unix(0, 0)
}
