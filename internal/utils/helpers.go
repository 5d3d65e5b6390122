package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]`)

// GenerateUserID construit un identifiant stable à partir du pseudo :
// user_<slug>_<timestamp>
func GenerateUserID(username string) string {
	slug := nonAlphaNum.ReplaceAllString(strings.ToLower(username), "")
	return fmt.Sprintf("user_%s_%d", slug, time.Now().UnixMilli())
}

// GenerateTwitterUserID construit l'identifiant d'un compte X (Twitter)
func GenerateTwitterUserID(twitterID string) string {
	return fmt.Sprintf("x_user_%s_%d", twitterID, time.Now().UnixMilli())
}
