package main

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// nowSeconds returns the wall clock as fractional unix seconds, the
// timestamp format the feed and chat messages carry
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
