// Package i18n renders dates, durations and category labels in the two
// locales the site serves, Arabic and French.
package i18n

import (
	"fmt"
	"time"

	"github.com/ayoub302/farm-sub001/models"
)

// Supported locales. Anything else is treated as French.
const (
	LocaleAr = "ar"
	LocaleFr = "fr"
)

var frWeekdays = [7]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var frMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var arWeekdays = [7]string{
	"الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت",
}

var arMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// Normalize maps any locale string onto a supported locale.
func Normalize(locale string) string {
	if locale == LocaleAr {
		return LocaleAr
	}
	return LocaleFr
}

// LongDate renders t as a long calendar date, weekday first:
// "lundi 10 février 2025" or "الإثنين 10 فبراير 2025".
// A zero time yields the empty string.
func LongDate(t time.Time, locale string) string {
	if t.IsZero() {
		return ""
	}
	switch Normalize(locale) {
	case LocaleAr:
		return fmt.Sprintf("%s %d %s %d", arWeekdays[t.Weekday()], t.Day(), arMonths[t.Month()-1], t.Year())
	default:
		return fmt.Sprintf("%s %d %s %d", frWeekdays[t.Weekday()], t.Day(), frMonths[t.Month()-1], t.Year())
	}
}

// Duration renders a whole-hour duration, "3 heures" or "3 ساعات".
func Duration(hours int, locale string) string {
	switch Normalize(locale) {
	case LocaleAr:
		return fmt.Sprintf("%d ساعات", hours)
	default:
		return fmt.Sprintf("%d heures", hours)
	}
}

// Level returns the difficulty label of a category in the requested locale.
func Level(category models.ActivityCategory, locale string) string {
	return category.Level().Resolve(Normalize(locale))
}
