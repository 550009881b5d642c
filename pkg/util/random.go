package util

import (
	"math/rand"
)

// GenerateRandomNumber generates a random number between min and max (inclusive)
func GenerateRandomNumber(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// PickRandom returns a random element from the given slice
func PickRandom(values []string) string {
	return values[rand.Intn(len(values))]
}
