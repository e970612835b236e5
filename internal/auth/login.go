package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/okezie-dev/gigmarket/internal/db"
	"github.com/okezie-dev/gigmarket/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

// ===== Login =====
func Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}

	ctx := c.Request().Context()

	var u user.User
	var password string
	var isActive bool
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, email, password, COALESCE(image,''), role,
               COALESCE(title,''), COALESCE(description,''), hourly_rate,
               COALESCE(level,''), COALESCE(response_time,''), skills, languages,
               is_active, created_at
        FROM users WHERE email = $1
    `, req.Email).Scan(
		&u.ID, &u.Name, &u.Email, &password, &u.Image, &u.Role,
		&u.Title, &u.Description, &u.HourlyRate,
		&u.Level, &u.ResponseTime, &u.Skills, &u.Languages,
		&isActive, &u.CreatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !isActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account suspended"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, LoginResponse{User: u, Token: signed})
}
