package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
	"github.com/okezie-dev/gigmarket/internal/user"
)

// Me returns the currently authenticated user's profile
func Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var u user.User
	err := db.Conn.QueryRow(c.Request().Context(), `
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

	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
