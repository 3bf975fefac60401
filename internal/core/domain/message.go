package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is an inquiry a buyer sends an agent about a property. A reply is
// stored on the same record; threads are a single request/response pair.
type Message struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	PropertyID string     `json:"property_id" bson:"property_id"`
	SenderID   string     `json:"sender_id" bson:"sender_id"`
	AgentID    string     `json:"agent_id" bson:"agent_id"`
	Body       string     `json:"body" bson:"body"`
	Reply      string     `json:"reply,omitempty" bson:"reply,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	RepliedAt  *time.Time `json:"replied_at,omitempty" bson:"replied_at,omitempty"`
}
