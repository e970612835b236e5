package marketplace

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// Review is a buyer's rating of a completed order
type Review struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	GigID      *string   `json:"gig_id,omitempty"`
	ReviewerID string    `json:"reviewer_id"`
	ReviewedID string    `json:"reviewed_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReviewWithDetails adds the reviewer's display identity
type ReviewWithDetails struct {
	Review
	ReviewerName  string `json:"reviewer_name"`
	ReviewerImage string `json:"reviewer_image,omitempty"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview lets the buyer rate a completed order, once
// POST /orders/:id/review
func CreateReview(c echo.Context) error {
	buyerID, ok := c.Get("user_id").(string)
	if !ok || buyerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id format"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if len(req.Comment) > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment too long (max 1000 characters)"})
	}

	ctx := c.Request().Context()

	var sellerID string
	var gigID *string
	var status Status
	err := db.Conn.QueryRow(ctx,
		`SELECT seller_id, gig_id, status FROM orders WHERE id = $1 AND buyer_id = $2`,
		orderID, buyerID,
	).Scan(&sellerID, &gigID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found or not yours"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}

	if status != StatusCompleted {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "can only review completed orders"})
	}

	var existingID string
	err = db.Conn.QueryRow(ctx, `SELECT id FROM reviews WHERE order_id = $1`, orderID).Scan(&existingID)
	if err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "review already exists for this order"})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check existing review"})
	}

	var review Review
	err = db.Conn.QueryRow(ctx, `
        INSERT INTO reviews (id, order_id, gig_id, reviewer_id, reviewed_id, rating, comment)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
        RETURNING id, order_id, gig_id, reviewer_id, reviewed_id, rating, COALESCE(comment,''), created_at, updated_at
    `, uuid.New().String(), orderID, gigID, buyerID, sellerID, req.Rating, req.Comment).Scan(
		&review.ID, &review.OrderID, &review.GigID, &review.ReviewerID, &review.ReviewedID,
		&review.Rating, &review.Comment, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"review": review})
}

// GetSellerReviews returns a seller's reviews with a rating summary
// GET /sellers/:id/reviews
func GetSellerReviews(c echo.Context) error {
	sellerID := c.Param("id")
	if sellerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing seller id"})
	}

	page := 1
	limit := 10
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 50 {
		limit = l
	}
	offset := (page - 1) * limit

	ctx := c.Request().Context()

	var sellerName string
	err := db.Conn.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, sellerID).Scan(&sellerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch seller"})
	}

	var totalReviews int
	var avg float64
	err = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE reviewed_id = $1`, sellerID,
	).Scan(&totalReviews, &avg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rating summary"})
	}

	breakdown := map[string]int{}
	rows, err := db.Conn.Query(ctx,
		`SELECT rating, COUNT(*) FROM reviews WHERE reviewed_id = $1 GROUP BY rating`, sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rating breakdown"})
	}
	defer rows.Close()
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			continue
		}
		breakdown[strconv.Itoa(rating)] = count
	}

	reviewRows, err := db.Conn.Query(ctx, `
        SELECT r.id, r.order_id, r.gig_id, r.reviewer_id, r.reviewed_id, r.rating, COALESCE(r.comment,''),
               r.created_at, r.updated_at, u.name, COALESCE(u.image,'')
        FROM reviews r JOIN users u ON u.id = r.reviewer_id
        WHERE r.reviewed_id = $1
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3
    `, sellerID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reviews"})
	}
	defer reviewRows.Close()

	reviews := []ReviewWithDetails{}
	for reviewRows.Next() {
		var r ReviewWithDetails
		if err := reviewRows.Scan(
			&r.ID, &r.OrderID, &r.GigID, &r.ReviewerID, &r.ReviewedID, &r.Rating, &r.Comment,
			&r.CreatedAt, &r.UpdatedAt, &r.ReviewerName, &r.ReviewerImage,
		); err != nil {
			continue
		}
		reviews = append(reviews, r)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"seller_summary": echo.Map{
			"seller_id":      sellerID,
			"seller_name":    sellerName,
			"total_reviews":  totalReviews,
			"average_rating": avg,
			"rating_counts":  breakdown,
		},
		"reviews": reviews,
		"pagination": echo.Map{
			"page":  page,
			"limit": limit,
			"total": totalReviews,
		},
	})
}

// GetOrderReview returns the review for a specific order, if it exists
// GET /orders/:id/review
func GetOrderReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}

	ctx := c.Request().Context()

	var buyerID, sellerID string
	err := db.Conn.QueryRow(ctx, `SELECT buyer_id, seller_id FROM orders WHERE id = $1`, orderID).Scan(&buyerID, &sellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	if userID != buyerID && userID != sellerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var r ReviewWithDetails
	err = db.Conn.QueryRow(ctx, `
        SELECT r.id, r.order_id, r.gig_id, r.reviewer_id, r.reviewed_id, r.rating, COALESCE(r.comment,''),
               r.created_at, r.updated_at, u.name, COALESCE(u.image,'')
        FROM reviews r JOIN users u ON u.id = r.reviewer_id
        WHERE r.order_id = $1
    `, orderID).Scan(
		&r.ID, &r.OrderID, &r.GigID, &r.ReviewerID, &r.ReviewedID, &r.Rating, &r.Comment,
		&r.CreatedAt, &r.UpdatedAt, &r.ReviewerName, &r.ReviewerImage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no review found for this order"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch review"})
	}

	return c.JSON(http.StatusOK, echo.Map{"review": r})
}
