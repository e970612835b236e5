package user

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// SellerDashboard returns headline counts plus the five most recent gigs
// and orders for the authenticated seller.
// GET /dashboard/seller
func SellerDashboard(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := c.Request().Context()

	var gigCount, orderCount, reviewCount int
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM gigs WHERE seller_id = $1`, userID).Scan(&gigCount)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE seller_id = $1`, userID).Scan(&orderCount)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE reviewed_id = $1`, userID).Scan(&reviewCount)

	type recentGig struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Images    []string  `json:"images"`
		Price     float64   `json:"price"`
		Published bool      `json:"published"`
		CreatedAt time.Time `json:"created_at"`
	}

	gigRows, err := db.Conn.Query(ctx, `
        SELECT id, title, images, price, published, created_at
        FROM gigs WHERE seller_id = $1
        ORDER BY created_at DESC LIMIT 5
    `, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch gigs"})
	}
	defer gigRows.Close()

	gigs := []recentGig{}
	for gigRows.Next() {
		var g recentGig
		if err := gigRows.Scan(&g.ID, &g.Title, &g.Images, &g.Price, &g.Published, &g.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse gig record"})
		}
		gigs = append(gigs, g)
	}

	type recentOrder struct {
		ID        string    `json:"id"`
		Status    string    `json:"status"`
		Total     float64   `json:"total"`
		GigTitle  string    `json:"gig_title"`
		BuyerName string    `json:"buyer_name"`
		CreatedAt time.Time `json:"created_at"`
	}

	orderRows, err := db.Conn.Query(ctx, `
        SELECT o.id, o.status, o.total, COALESCE(g.title, ''), u.name, o.created_at
        FROM orders o
        LEFT JOIN gigs g ON g.id = o.gig_id
        JOIN users u ON u.id = o.buyer_id
        WHERE o.seller_id = $1
        ORDER BY o.created_at DESC LIMIT 5
    `, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch orders"})
	}
	defer orderRows.Close()

	orders := []recentOrder{}
	for orderRows.Next() {
		var o recentOrder
		if err := orderRows.Scan(&o.ID, &o.Status, &o.Total, &o.GigTitle, &o.BuyerName, &o.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse order record"})
		}
		orders = append(orders, o)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"gigs":    gigCount,
			"orders":  orderCount,
			"reviews": reviewCount,
		},
		"gigs":   gigs,
		"orders": orders,
	})
}
