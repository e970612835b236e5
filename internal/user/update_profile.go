package user

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

type UpdateProfileRequest struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Level        string   `json:"level"`
	ResponseTime string   `json:"response_time"`
	Skills       []string `json:"skills"`
	Languages    []string `json:"languages"`
	Role         string   `json:"role"`
}

// UpdateProfile replaces the caller's marketplace profile.
// PUT /profile
func UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	// Users may switch between USER and SELLER; ADMIN is granted only via
	// the adminutil CLI.
	if req.Role != "" && req.Role != "USER" && req.Role != "SELLER" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	if req.Skills == nil {
		req.Skills = []string{}
	}
	if req.Languages == nil {
		req.Languages = []string{}
	}

	ctx := c.Request().Context()

	var u User
	err := db.Conn.QueryRow(ctx, `
        UPDATE users
        SET name = $1,
            title = NULLIF($2, ''),
            description = NULLIF($3, ''),
            hourly_rate = $4,
            level = NULLIF($5, ''),
            response_time = NULLIF($6, ''),
            skills = $7,
            languages = $8,
            role = COALESCE(NULLIF($9, ''), role),
            updated_at = NOW()
        WHERE id = $10
        RETURNING id, name, email, COALESCE(image,''), role,
                  COALESCE(title,''), COALESCE(description,''), hourly_rate,
                  COALESCE(level,''), COALESCE(response_time,''), skills, languages, created_at
    `,
		req.Name, strings.TrimSpace(req.Title), strings.TrimSpace(req.Description),
		req.HourlyRate, strings.TrimSpace(req.Level), strings.TrimSpace(req.ResponseTime),
		req.Skills, req.Languages, req.Role, userID,
	).Scan(
		&u.ID, &u.Name, &u.Email, &u.Image, &u.Role,
		&u.Title, &u.Description, &u.HourlyRate,
		&u.Level, &u.ResponseTime, &u.Skills, &u.Languages, &u.CreatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
