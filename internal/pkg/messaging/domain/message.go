package messaging

import (
	"errors"
	"strings"
	"time"
)

// Transport records how a message reached (or will reach) its recipient.
// It is informational only; delivery state lives in the Delivered flag.
type Transport string

const (
	TransportLive    Transport = "live"
	TransportOffline Transport = "offline"
	TransportPeer    Transport = "peer"
)

var (
	ErrRecipientNotFound = errors.New("messaging: recipient does not exist")
	ErrNotAuthorized     = errors.New("messaging: sender may not message recipient")
	ErrEmptyPayload      = errors.New("messaging: empty payload")
)

// Message is immutable once created. Delivered is monotonic false→true and
// flips exactly once: at live hand-off, or when an offline drain returns the
// message to the recipient. Payload is opaque; the backend neither inspects
// nor transforms it (encryption happens client-side).
type Message struct {
	ID          int64     `json:"id,omitempty"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Payload     string    `json:"payload"`
	Transport   Transport `json:"transport"`
	Delivered   bool      `json:"delivered"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMessage validates and shapes a message ready to route.
func NewMessage(senderID, recipientID int64, payload string) (*Message, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, ErrEmptyPayload
	}
	return &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
