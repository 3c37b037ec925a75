package utils

import (
	"os"
	"os/user"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// HostAnnotation returns the hostname in a form safe to append after a ':'
// separator. Colons and surrounding whitespace are stripped; an empty string
// is returned when the hostname cannot be read.
func HostAnnotation() string {
	hostname, err := GetHostname()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(hostname, ":", ""))
}
