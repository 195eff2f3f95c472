package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mindmatch/memoryledger/internal/model"
)

// Broadcaster forwards ledger facts to SSE clients. It implements
// facts.Subscriber; Notify is called on the ledger's goroutine, so it
// only formats the frame and hands it to the hub's buffered channel.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify renders the fact as an SSE event named after the fact type.
func (b *Broadcaster) Notify(fact model.Fact) {
	payload := wirePayload(fact)
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to encode fact",
			slog.String("fact_type", string(fact.Type)),
			slog.Any("error", err))
		return
	}

	b.hub.BroadcastEvent(string(fact.Type), string(data))
}

// wirePayload maps a fact payload to its JSON wire shape.
func wirePayload(fact model.Fact) map[string]any {
	out := map[string]any{
		"timestamp": fact.Timestamp.UTC(),
	}

	switch p := fact.Payload.(type) {
	case model.UserRegisteredPayload:
		out["identity"] = string(p.Identity)
		out["display_name"] = p.DisplayName
	case model.DisplayNameUpdatedPayload:
		out["identity"] = string(p.Identity)
		out["display_name"] = p.DisplayName
	case model.GameCompletedPayload:
		out["identity"] = string(p.Identity)
		out["game_id"] = uint64(p.GameID)
		out["won"] = p.Won
		out["difficulty"] = p.Difficulty.String()
		out["time_spent"] = p.TimeSpent
		out["points"] = p.Points
	case model.DailyChallengeCompletedPayload:
		out["identity"] = string(p.Identity)
		out["date_key"] = uint64(p.DateKey)
		out["difficulty"] = p.Difficulty.String()
		out["points"] = p.Points
	}

	return out
}
