package user

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// GetPublicProfile returns the public subset of a user's profile together
// with their seller rating.
// GET /users/:id/profile
func GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}

	ctx := c.Request().Context()

	var u User
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, COALESCE(image,''), role,
               COALESCE(title,''), COALESCE(description,''),
               COALESCE(level,''), COALESCE(response_time,''), skills, languages, created_at
        FROM users WHERE id = $1 AND is_active
    `, userID).Scan(
		&u.ID, &u.Name, &u.Image, &u.Role,
		&u.Title, &u.Description,
		&u.Level, &u.ResponseTime, &u.Skills, &u.Languages, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}

	var avgRating float64
	var reviewCount int
	_ = db.Conn.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE reviewed_id = $1`, userID,
	).Scan(&avgRating, &reviewCount)

	var gigCount int
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM gigs WHERE seller_id = $1 AND published`, userID,
	).Scan(&gigCount)

	return c.JSON(http.StatusOK, echo.Map{
		"user":         u,
		"rating":       avgRating,
		"review_count": reviewCount,
		"gig_count":    gigCount,
	})
}
