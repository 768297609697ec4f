package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math"
)

// GenerateRandomToken returns length hex characters of crypto-random data.
func GenerateRandomToken(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)[:length]
}

// RoundTo1 rounds half away from zero to one decimal place.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
