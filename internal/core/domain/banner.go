package domain

import "time"

type BannerStyle string

const (
	BannerStatic    BannerStyle = "static"
	BannerScrolling BannerStyle = "scrolling"
)

// Banner is a textual overlay shown atop the composed output.
// At most one banner is active at any time; activation deactivates
// all others atomically. A scrolling banner's movement is a pure
// presentation animation, not core state.
type Banner struct {
	ID        BannerID    `json:"id"`
	Text      string      `json:"text"`
	Style     BannerStyle `json:"style"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	Ordinal   int         `json:"ordinal"`
}
