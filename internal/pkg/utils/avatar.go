package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// AvatarURL returns a Gravatar image for email. Accounts without an email get an
// identicon derived from their username so authors stay distinguishable.
func AvatarURL(email, username string, size int) string {
	if size <= 0 {
		size = 200
	}

	fallback := "mp"
	identity := strings.ToLower(strings.TrimSpace(email))
	if identity == "" {
		identity = "yatube:" + username
		fallback = "identicon"
	}

	hash := md5.Sum([]byte(identity))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=%s", hash, size, fallback)
}
