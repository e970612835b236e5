package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// Stats reports platform-wide entity counts
// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := c.Request().Context()

	var users, sellers, gigs, orders, reviews, messages int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'SELLER'`).Scan(&sellers)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM gigs`).Scan(&gigs)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orders)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&reviews)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&messages)

	return c.JSON(http.StatusOK, echo.Map{
		"users":    users,
		"sellers":  sellers,
		"gigs":     gigs,
		"orders":   orders,
		"reviews":  reviews,
		"messages": messages,
	})
}
