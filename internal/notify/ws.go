package notify

import "pieceJobBack/internal/safety"

// Pusher delivers a JSON payload to a connected user.
type Pusher interface {
	Push(userID string, payload interface{})
}

// WSSink forwards every safety event to the customer and the provider.
type WSSink struct {
	Hub Pusher
}

type wsEnvelope struct {
	Channel string       `json:"channel"`
	Event   safety.Event `json:"event"`
}

func (s WSSink) Notify(e safety.Event) {
	msg := wsEnvelope{Channel: "safety", Event: e}
	seen := map[string]bool{}
	for _, id := range []string{e.CustomerID, e.ProviderID, e.UserID} {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		s.Hub.Push(id, msg)
	}
}
