package util

import (
	"fmt"

	"github.com/studyclub-io/study-club-be/config"
)

// Avatar is the fallback profile image for accounts whose provider exposes
// none.
func Avatar(seed string) string {
	return fmt.Sprintf("https://avatars.dicebear.com/api/bottts/%v.svg?size=%v", seed, config.ProfileImageSize)
}
