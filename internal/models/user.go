package models

import "time"

type User struct {
	UserID    int64     `json:"user_id"` // Telegram chat id
	Username  string    `json:"username"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}
