package utils

import (
	"crypto/rand"
	"strings"
)

// GenerateBookingCode returns a human-readable reservation code such as
// "RSV-4F09AC".
func GenerateBookingCode() string {
	return "RSV-" + strings.ToUpper(randomHex(3))
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n*2)
	for i, v := range b {
		out[i*2] = hex[v>>4]
		out[i*2+1] = hex[v&0x0f]
	}
	return string(out)
}
