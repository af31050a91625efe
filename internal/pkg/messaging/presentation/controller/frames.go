package controller

import (
	"encoding/json"

	"github.com/1mmey/SecurityChat/internal/infrastructure/realtime"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

// Wire frames shared by the websocket endpoint and the live delivery path.

type inboundFrame struct {
	Type        string `json:"type"`
	RecipientID int64  `json:"recipient_id,omitempty"`
	Payload     string `json:"payload,omitempty"`
}

type outboundMessage struct {
	Type    string            `json:"type"`
	Message messaging.Message `json:"message"`
}

type typingFrame struct {
	Type   string `json:"type"`
	FromID int64  `json:"from_id"`
}

type ackFrame struct {
	Type      string `json:"type"`
	MessageID int64  `json:"message_id,omitempty"`
	Delivered bool   `json:"delivered"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// RegistryDeliverer implements live hand-off on top of the session registry.
// A send that fails at the transport evicts the dead session inside the
// registry and reports false, which routes the message to the offline path.
// The hand-off runs before the row is written, so live frames carry no id
// (omitted by omitempty); the sender's ack and the history endpoint hold
// the persisted id.
type RegistryDeliverer struct {
	Registry *realtime.Registry
}

func (d RegistryDeliverer) Deliver(m messaging.Message) bool {
	m.Transport = messaging.TransportLive
	m.Delivered = true
	payload, err := json.Marshal(outboundMessage{Type: "message", Message: m})
	if err != nil {
		return false
	}
	return d.Registry.Send(m.RecipientID, payload)
}
