package util

import (
	"fmt"
	"math/rand"
)

var names = []string{
	"Owl",
	"Fox",
	"Otter",
	"Heron",
}

// GenerateNickname fills in a default nickname for providers that don't
// supply one.
func GenerateNickname() string {
	return fmt.Sprintf("Studier %v%v", names[rand.Intn(len(names))], rand.Intn(1000))
}
