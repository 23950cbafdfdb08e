package content

import (
	"fmt"
	"time"
)

// DateStyle selects one of the intranet's date renderings.
type DateStyle int

const (
	DateFull   DateStyle = iota // 2025.11.03
	DateShort                   // 11/3 (월)
	DateTime                    // 09:05
	DateKorean                  // 2025년 11월 3일 (월)
)

var weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatDate renders t in the given style.
func FormatDate(t time.Time, style DateStyle) string {
	switch style {
	case DateShort:
		return fmt.Sprintf("%d/%d (%s)", int(t.Month()), t.Day(), weekdays[t.Weekday()])
	case DateTime:
		return t.Format("15:04")
	case DateKorean:
		return fmt.Sprintf("%d년 %d월 %d일 (%s)", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
	default:
		return t.Format("2006.01.02")
	}
}

// RelativeDate returns now shifted by days.
func RelativeDate(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}

// Relative formats now shifted by days in the full style.
func Relative(now time.Time, days int) string {
	return FormatDate(RelativeDate(now, days), DateFull)
}
