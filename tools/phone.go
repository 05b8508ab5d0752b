package tools

import (
	"regexp"
	"strings"
	"unicode"
)

var phoneRegexp = regexp.MustCompile(`^(\d{2,4})-(\d{2,4})-(\d{3,4})$`)

const (
	PhoneErrHyphens = "電話番号はハイフン2つを含める必要があります。"
	PhoneErrDigits  = "電話番号は10桁から11桁の数字で入力してください。"
	PhoneErrFormat  = "電話番号の形式が正しくありません。"
)

// CheckPhoneNumber validates a Japanese phone number written with two hyphens
// (e.g. 03-1234-5678). It returns the failure message, or "" when the number is valid.
// Rules are checked in order: hyphen count, digit count (10-11), shape, area code length.
func CheckPhoneNumber(raw string) string {
	if strings.Count(raw, "-") != 2 {
		return PhoneErrHyphens
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
		}
	}
	if n := b.Len(); n < 10 || n > 11 {
		return PhoneErrDigits
	}

	if !phoneRegexp.MatchString(raw) {
		return PhoneErrFormat
	}

	area := strings.SplitN(raw, "-", 2)[0]
	if len(area) < 2 || len(area) > 4 {
		return PhoneErrFormat
	}
	return ""
}
