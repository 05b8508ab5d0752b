package tools

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPhoneNumber(t *testing.T) {
	cases := []struct {
		name  string
		phone string
		want  string
	}{
		{"tokyo landline", "03-1234-5678", ""},
		{"mobile", "090-1234-5678", ""},
		{"four digit area", "0568-12-3456", ""},
		{"no hyphens", "0312345678", PhoneErrHyphens},
		{"three hyphens", "03-12-34-5678", PhoneErrHyphens},
		{"too few digits", "03-123-456", PhoneErrDigits},
		{"too many digits", "090-12345-67890", PhoneErrDigits},
		{"five digit area", "03123-12-345", PhoneErrFormat},
		{"letters", "03-abcd-5678", PhoneErrDigits},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckPhoneNumber(tc.phone))
		})
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidatePostalCode("1234567"))
	assert.False(t, ValidatePostalCode("123-4567"))
	assert.False(t, ValidatePostalCode("123456"))

	assert.True(t, ValidateKatakana("テストユーザー"))
	assert.False(t, ValidateKatakana("てすと"))
	assert.False(t, ValidateKatakana("Test"))

	assert.True(t, ValidateClock("09:30"))
	assert.True(t, ValidateClock("23:59"))
	assert.False(t, ValidateClock("24:00"))
	assert.False(t, ValidateClock("9:30"))

	assert.True(t, ValidateDate("2026-01-31"))
	assert.False(t, ValidateDate("2026-02-30"))

	assert.True(t, ClockBefore("10:00", "22:00"))
	assert.False(t, ClockBefore("22:00", "10:00"))
	assert.False(t, ClockBefore("10:00", "10:00"))

	assert.True(t, ValidateBirthday("19900101"))
	assert.False(t, ValidateBirthday("1990-01-01"))

	assert.True(t, ValidateEmail("taro@example.com"))
	assert.False(t, ValidateEmail("taro@"))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, ComparePassword(hash, "password123"))
	assert.False(t, ComparePassword(hash, "wrong"))

	assert.Equal(t, "password", CheckPassword("short"))
	assert.Equal(t, "", CheckPassword("long enough"))
}

func TestRestaurantQRCode(t *testing.T) {
	png, err := RestaurantQRCode("http://localhost:8080", 12)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(5), ParseID("5"))
	assert.Equal(t, int64(0), ParseID("-1"))
	assert.Equal(t, int64(0), ParseID("abc"))
}
