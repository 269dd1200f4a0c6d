package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID generates a unique id with a type prefix.
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

// GenerateParticipantID generates a unique participant ID.
func GenerateParticipantID() string {
	return GenerateID("participant")
}

// GenerateShareID generates a share-scoped participant ID for a screen
// share. Ending a share removes exactly the record created under this id.
func GenerateShareID() string {
	return GenerateID("screen")
}

// GenerateBannerID generates a unique banner ID.
func GenerateBannerID() string {
	return GenerateID("banner")
}

// GenerateDestinationID generates a unique destination ID.
func GenerateDestinationID() string {
	return GenerateID("dest")
}

// GenerateSessionID generates a unique session ID.
func GenerateSessionID() string {
	return GenerateID("session")
}

// GenerateChatMessageID generates a unique chat message ID.
func GenerateChatMessageID() string {
	return GenerateID("msg")
}

// GenerateRequestID generates a unique request ID for log correlation.
func GenerateRequestID() string {
	return GenerateID("req")
}
