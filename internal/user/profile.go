package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// GetProfile returns the authenticated user's profile with activity stats
func GetProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := c.Request().Context()

	var u User
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, email, COALESCE(image,''), role,
               COALESCE(title,''), COALESCE(description,''), hourly_rate,
               COALESCE(level,''), COALESCE(response_time,''), skills, languages, created_at
        FROM users WHERE id = $1
    `, userID).Scan(
		&u.ID, &u.Name, &u.Email, &u.Image, &u.Role,
		&u.Title, &u.Description, &u.HourlyRate,
		&u.Level, &u.ResponseTime, &u.Skills, &u.Languages, &u.CreatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	var stats ProfileStats
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM gigs WHERE seller_id = $1 AND published`, userID,
	).Scan(&stats.ActiveGigs)
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE seller_id = $1 AND status = 'COMPLETED'`, userID,
	).Scan(&stats.CompletedOrders)
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE reviewed_id = $1`, userID,
	).Scan(&stats.TotalReviews)

	return c.JSON(http.StatusOK, echo.Map{"user": u, "stats": stats})
}
