package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a captured newsletter email address. Records are created
// once and never updated or deleted by the application.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
