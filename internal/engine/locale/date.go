package locale

import (
	"fmt"
	"time"
)

// EraOffset converts a Gregorian year to the Buddhist era.
const EraOffset = 543

// DatePlaceholder is printed where a date is missing, leaving room to fill it by hand.
const DatePlaceholder = "...................."

var monthNames = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var shortMonthNames = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// MonthName returns the full Thai name of m.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// FormatDate renders "day month year" with the Thai month name and the
// Buddhist-era year, e.g. "1 มกราคม 2567".
func FormatDate(t time.Time, localized bool) string {
	if t.IsZero() {
		return DatePlaceholder
	}
	s := fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year()+EraOffset)
	return Digits(s, localized)
}

// FormatShortDate renders the abbreviated form used inside stamp boxes, e.g. "1 ม.ค. 2567".
func FormatShortDate(t time.Time, localized bool) string {
	if t.IsZero() {
		return DatePlaceholder
	}
	s := fmt.Sprintf("%d %s %d", t.Day(), shortMonthNames[t.Month()-1], t.Year()+EraOffset)
	return Digits(s, localized)
}

// FormatTime renders "HH:MM".
func FormatTime(t time.Time, localized bool) string {
	return Digits(t.Format("15:04"), localized)
}
