package domain

// ViewModel is the read-only composed state handed to the presentation
// layer after every mutation. The presentation layer never mutates it and
// the core never calls back into the presentation layer.
type ViewModel struct {
	SessionID      SessionID         `json:"session_id"`
	Mode           SessionMode       `json:"mode"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
	Elapsed        string            `json:"elapsed"`
	Layout         LayoutMode        `json:"layout"`
	GridColumns    int               `json:"grid_columns"`
	Slots          []SlotView        `json:"slots"`
	ActiveBanner   *BannerView       `json:"active_banner,omitempty"`
	Destinations   []DestView        `json:"active_destinations"`
	Warnings       []string          `json:"warnings,omitempty"`
	Settings       StudioSettings    `json:"settings"`
	Participants   []ParticipantView `json:"participants"`
}

// SlotView is the wire form of a composed slot.
type SlotView struct {
	Role        SlotRole        `json:"role"`
	Participant ParticipantView `json:"participant"`
}

type ParticipantView struct {
	ID              ParticipantID   `json:"id"`
	DisplayName     string          `json:"display_name"`
	Kind            ParticipantKind `json:"kind"`
	IsLocal         bool            `json:"is_local"`
	OnStage         bool            `json:"on_stage"`
	Muted           bool            `json:"muted"`
	VideoSuppressed bool            `json:"video_suppressed"`
	HasMedia        bool            `json:"has_media"`
}

type BannerView struct {
	ID    BannerID    `json:"id"`
	Text  string      `json:"text"`
	Style BannerStyle `json:"style"`
}

type DestView struct {
	ID          DestinationID `json:"id"`
	Platform    Platform      `json:"platform"`
	DisplayName string        `json:"display_name"`
	Connected   bool          `json:"connected"`
	Enabled     bool          `json:"enabled"`
}

// ViewOf projects a participant into its wire form.
func ViewOf(p *Participant) ParticipantView {
	return ParticipantView{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		Kind:            p.Kind,
		IsLocal:         p.IsLocal,
		OnStage:         p.OnStage,
		Muted:           p.Muted,
		VideoSuppressed: p.VideoSuppressed,
		HasMedia:        p.HasMedia(),
	}
}

// BannerViewOf projects a banner into its wire form.
func BannerViewOf(b *Banner) *BannerView {
	if b == nil {
		return nil
	}
	return &BannerView{ID: b.ID, Text: b.Text, Style: b.Style}
}

// DestViewOf projects a destination into its wire form. Credentials are
// deliberately excluded; they never leave the destination record.
func DestViewOf(d *Destination) DestView {
	return DestView{
		ID:          d.ID,
		Platform:    d.Platform,
		DisplayName: d.DisplayName,
		Connected:   d.Connected,
		Enabled:     d.Enabled,
	}
}
