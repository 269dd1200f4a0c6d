package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	maxDisplayNameLen = 100
	maxBannerTextLen  = 280
	maxStreamKeyLen   = 256
)

// ValidateDisplayName validates a participant or destination display name.
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name is required")
	}
	if utf8.RuneCountInString(name) > maxDisplayNameLen {
		return fmt.Errorf("display name is too long (max %d characters)", maxDisplayNameLen)
	}
	return nil
}

// ValidateBannerText validates overlay banner text after trimming.
func ValidateBannerText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("banner text is required")
	}
	if utf8.RuneCountInString(text) > maxBannerTextLen {
		return fmt.Errorf("banner text is too long (max %d characters)", maxBannerTextLen)
	}
	return nil
}

// ValidateRTMPURL validates a custom destination ingest URL.
func ValidateRTMPURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	switch u.Scheme {
	case "rtmp", "rtmps":
	default:
		return fmt.Errorf("invalid url scheme %q (rtmp or rtmps required)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url host is required")
	}
	return nil
}

// ValidateStreamKey validates a custom destination stream key.
func ValidateStreamKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("stream key is required")
	}
	if len(key) > maxStreamKeyLen {
		return fmt.Errorf("stream key is too long (max %d characters)", maxStreamKeyLen)
	}
	return nil
}
