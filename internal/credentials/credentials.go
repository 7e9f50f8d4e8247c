package credentials

import (
	"encoding/base64"
	"strings"
	"unicode"
)

// Store holds the SMTP AUTH credentials in encoded form. The encoding is
// reversible obfuscation, not a hash, so it gives no confidentiality at rest.
type Store struct {
	username string
	password string
}

type Configuration struct {
	Username string
	Password string
}

func NewStore(config Configuration) *Store {
	return &Store{
		username: Encode(config.Username),
		password: Encode(config.Password),
	}
}

// Matches reports whether both candidates equal the stored credentials after
// control characters have been stripped from them.
func (s *Store) Matches(username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	u := Encode(StripControl(username))
	p := Encode(StripControl(password))

	return u == s.username && p == s.password
}

func Encode(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

// StripControl removes every Unicode control character from value.
func StripControl(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
