package jumpscare

import (
	"math/rand"
	"time"
)

// StampLayout is how terminal lines are timestamped.
const StampLayout = "2006-01-02 15:04:05"

// oldYears are the years the fabricated stale timestamps come from.
var oldYears = []int{1987, 1994, 1999, 2003, 2008, 2011}

var normalLines = []string{
	"daydream-sec login: session restored (tty3)",
	"$ sudo systemctl status intranet-gw",
	"● intranet-gw.service - Daydream Intranet Gateway",
	"   Active: active (running)",
	"$ tail -f /var/log/access/13F.log",
	"GET /notices/3 200 (D조)",
	"GET /notices/3/attachments/01.jpg 404",
	"GET /notices/3/attachments/02.jpg 404",
	"biometric: badge 0x2F1A verified",
	"cctv: 3F lounge camera C-07 online",
	"cctv: 3F lounge camera C-07 motion detected",
	"$ grep -r \"버건디\" /srv/lostfound",
}

var abnormalLines = []string{
	"[WARN] cognito-filter: unregistered pattern in /srv/lostfound/diary",
	"[WARN] cctv C-07: frame contains 2 occupants (expected 1)",
	"[ALERT] terminal KR-24-092 is being read from an external session",
	"[ALERT] reverse lookup: owner of diary == current viewer",
	"[ALERT] containment: 3F emergency shutter engaged",
	"[TRACE] tracking current viewer...",
}

// Stamp returns the timestamp for log line i. Every third line has an even
// chance of a fabricated old date; the rest are now plus a per-line offset
// and a little jitter.
func Stamp(rng *rand.Rand, now time.Time, i int, offset, jitter time.Duration) string {
	if i%3 == 0 && rng.Intn(2) == 0 {
		year := oldYears[rng.Intn(len(oldYears))]
		t := time.Date(year, time.Month(1+rng.Intn(12)), 1+rng.Intn(28),
			rng.Intn(24), rng.Intn(60), rng.Intn(60), 0, now.Location())
		return t.Format(StampLayout)
	}
	d := time.Duration(i) * offset
	if jitter > 0 {
		d += time.Duration(rng.Int63n(int64(jitter)))
	}
	return now.Add(d).Format(StampLayout)
}
