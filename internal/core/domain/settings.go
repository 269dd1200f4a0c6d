package domain

type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
	Resolution4K    Resolution = "4k"
)

type FrameRate string

const (
	FrameRate30 FrameRate = "30fps"
	FrameRate60 FrameRate = "60fps"
)

// StudioSettings is operator configuration applied to the composed output.
type StudioSettings struct {
	Resolution  Resolution
	FrameRate   FrameRate
	EchoCancel  bool
	ShowNames   bool
	MirrorVideo bool
}

// DefaultStudioSettings mirrors the studio's out-of-the-box configuration.
func DefaultStudioSettings() StudioSettings {
	return StudioSettings{
		Resolution:  Resolution1080p,
		FrameRate:   FrameRate30,
		EchoCancel:  true,
		ShowNames:   true,
		MirrorVideo: true,
	}
}

// ValidResolution reports whether r is a supported output resolution.
func ValidResolution(r Resolution) bool {
	switch r {
	case Resolution720p, Resolution1080p, Resolution4K:
		return true
	}
	return false
}

// ValidFrameRate reports whether f is a supported output frame rate.
func ValidFrameRate(f FrameRate) bool {
	return f == FrameRate30 || f == FrameRate60
}
