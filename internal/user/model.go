package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"` // never return
	Image        string    `json:"image,omitempty"`
	Role         string    `json:"role"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	HourlyRate   *float64  `json:"hourly_rate,omitempty"`
	Level        string    `json:"level,omitempty"`
	ResponseTime string    `json:"response_time,omitempty"`
	Skills       []string  `json:"skills"`
	Languages    []string  `json:"languages"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileStats summarizes a user's marketplace activity
type ProfileStats struct {
	ActiveGigs      int `json:"active_gigs"`
	CompletedOrders int `json:"completed_orders"`
	TotalReviews    int `json:"total_reviews"`
}
