package tools

import (
	"regexp"
	"time"
)

var (
	emailRegexp      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	postalCodeRegexp = regexp.MustCompile(`^[0-9]{7}$`)
	birthdayRegexp   = regexp.MustCompile(`^[0-9]{8}$`)
	katakanaRegexp   = regexp.MustCompile(`^[ァ-ヶー]+$`)
	clockRegexp      = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidatePostalCode accepts exactly seven digits, no hyphen.
func ValidatePostalCode(code string) bool {
	return postalCodeRegexp.MatchString(code)
}

func ValidateBirthday(birthday string) bool {
	return birthdayRegexp.MatchString(birthday)
}

func ValidateKatakana(kana string) bool {
	return katakanaRegexp.MatchString(kana)
}

// ValidateClock accepts a 24h "HH:MM" time of day.
func ValidateClock(value string) bool {
	return clockRegexp.MatchString(value)
}

// ValidateDate accepts "YYYY-MM-DD".
func ValidateDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ClockBefore reports whether opening is strictly earlier than closing.
// Both values must already be valid "HH:MM" strings.
func ClockBefore(opening, closing string) bool {
	return opening < closing
}

// CheckPassword returns the name of the failed rule or "" when the password is acceptable.
func CheckPassword(password string) string {
	if len(password) < 8 {
		return "password"
	}
	return ""
}
