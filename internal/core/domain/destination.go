package domain

import "time"

type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformFacebook Platform = "facebook"
	PlatformLinkedIn Platform = "linkedin"
	PlatformTwitch   Platform = "twitch"
	PlatformCustom   Platform = "custom"
)

// KnownPlatforms lists every platform a destination may target.
var KnownPlatforms = []Platform{
	PlatformYouTube,
	PlatformFacebook,
	PlatformLinkedIn,
	PlatformTwitch,
	PlatformCustom,
}

// Credentials is the opaque target reference for a destination.
// For custom RTMP targets both URL and StreamKey must be non-empty.
type Credentials struct {
	URL       string
	StreamKey string
}

// Destination is an external target platform for the broadcast output.
// Invariant: Enabled implies Connected. Toggling Enabled while live only
// affects the next broadcast start; no mid-broadcast teardown is modeled.
type Destination struct {
	ID          DestinationID
	Platform    Platform
	DisplayName string
	Connected   bool
	Enabled     bool
	Credentials Credentials
	CreatedAt   time.Time
	Ordinal     int
}

// ValidPlatform reports whether p is one of the enumerated platforms.
func ValidPlatform(p Platform) bool {
	for _, known := range KnownPlatforms {
		if p == known {
			return true
		}
	}
	return false
}
