package notifications

import "time"

type Notification struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
