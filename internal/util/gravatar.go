package util

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL builds the avatar URL for an email address: the md5 of the
// normalized address, sized, rated pg, with the "mystery man" fallback.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 200
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&r=pg&d=mm", hash, size)
}
