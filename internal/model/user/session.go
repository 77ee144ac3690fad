package user

import "time"

// Session is the single locally persisted login. There is no verification
// step; the backend only remembers who is using the app.
type Session struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
