package utils

import "time"

// CalculateAge returns completed years between birthday and now.
func CalculateAge(birthday, now time.Time) int {
	if birthday.IsZero() || birthday.After(now) {
		return 0
	}
	years := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() || (now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		years--
	}
	return years
}
