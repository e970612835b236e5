package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/alerts"
	"github.com/okezie-dev/gigmarket/internal/db"
)

const orderSelect = `
    SELECT o.id, o.buyer_id, o.seller_id, o.total, o.status, o.created_at, o.updated_at,
           bu.name, COALESCE(bu.image,''),
           su.name, COALESCE(su.image,''),
           g.id, g.title, g.images,
           p.id, p.name, p.price, p.delivery_time, p.revisions
    FROM orders o
    JOIN users bu ON bu.id = o.buyer_id
    JOIN users su ON su.id = o.seller_id
    LEFT JOIN gigs g ON g.id = o.gig_id
    LEFT JOIN packages p ON p.id = o.package_id`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var gigID, gigTitle *string
	var gigImages []string
	var pkgID, pkgName *string
	var pkgPrice *float64
	var pkgDelivery, pkgRevisions *int

	err := row.Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&o.Buyer.Name, &o.Buyer.Image,
		&o.Seller.Name, &o.Seller.Image,
		&gigID, &gigTitle, &gigImages,
		&pkgID, &pkgName, &pkgPrice, &pkgDelivery, &pkgRevisions,
	)
	if err != nil {
		return Order{}, err
	}
	o.Buyer.ID = o.BuyerID
	o.Seller.ID = o.SellerID
	if gigID != nil {
		o.Gig = &OrderGigSummary{ID: *gigID, Title: *gigTitle, Images: gigImages}
	}
	if pkgID != nil {
		o.Package = &OrderPackageSummary{ID: *pkgID, Name: *pkgName, Price: *pkgPrice, DeliveryTime: *pkgDelivery, Revisions: *pkgRevisions}
	}
	return o, nil
}

func fetchOrder(ctx context.Context, orderID string) (Order, error) {
	return scanOrder(db.Conn.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, orderID))
}

// CreateOrder places an order for one package of one gig. The seller and
// the total are taken from the stored gig and package rows, never from the
// client; a client-supplied total that disagrees with the package price is
// rejected.
// POST /orders
func CreateOrder(c echo.Context) error {
	buyerID, ok := c.Get("user_id").(string)
	if !ok || buyerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		GigID     string  `json:"gigId"`
		PackageID string  `json:"packageId"`
		Total     float64 `json:"total"`
	}
	if err := c.Bind(&req); err != nil || req.GigID == "" || req.PackageID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gigId and packageId are required"})
	}

	ctx := c.Request().Context()

	var sellerID string
	var published bool
	err := db.Conn.QueryRow(ctx, `SELECT seller_id, published FROM gigs WHERE id = $1`, req.GigID).Scan(&sellerID, &published)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch gig"})
	}
	if !published {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gig is not available"})
	}

	var pkgGigID string
	var pkgPrice float64
	err = db.Conn.QueryRow(ctx, `SELECT gig_id, price FROM packages WHERE id = $1`, req.PackageID).Scan(&pkgGigID, &pkgPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch package"})
	}
	if pkgGigID != req.GigID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "package does not belong to this gig"})
	}
	if sellerID == buyerID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot order your own gig"})
	}
	if err := validateOrderTotal(req.Total, pkgPrice); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	orderID := uuid.New().String()
	_, err = db.Conn.Exec(ctx, `
        INSERT INTO orders (id, buyer_id, seller_id, gig_id, package_id, total, status)
        VALUES ($1, $2, $3, $4, $5, $6, 'PENDING')
    `, orderID, buyerID, sellerID, req.GigID, req.PackageID, pkgPrice)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	order, err := fetchOrder(ctx, orderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}

	notifyOrderEvent(ctx, sellerID, orderID, "order:placed", "New order received",
		fmt.Sprintf("You received a new order worth %.2f.", pkgPrice))
	if email := lookupEmail(ctx, sellerID); email != "" {
		_ = alerts.EnqueueOrderPlaced(orderID, buyerID, sellerID, email, pkgPrice)
	}

	return c.JSON(http.StatusCreated, echo.Map{"order": order})
}

// GetUserOrders lists the caller's orders, buying side by default.
// GET /orders?type=buying|selling
func GetUserOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	column := "o.buyer_id"
	if c.QueryParam("type") == "selling" {
		column = "o.seller_id"
	}

	rows, err := db.Conn.Query(c.Request().Context(),
		orderSelect+` WHERE `+column+` = $1 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch orders"})
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse order record"})
		}
		orders = append(orders, o)
	}

	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder returns a single order to one of its participants
// GET /orders/:id
func GetOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}

	order, err := fetchOrder(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	if userID != order.BuyerID && userID != order.SellerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// orderParty restricts who may trigger a transition
type orderParty int

const (
	partyBuyer orderParty = iota
	partySeller
	partyEither
)

// transitionOrder applies one state-machine move after authorizing the
// caller. Illegal moves and terminal states return 400.
func transitionOrder(c echo.Context, target Status, allowed orderParty) (Order, bool) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return Order{}, false
	}

	orderID := c.Param("id")
	if orderID == "" {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
		return Order{}, false
	}

	ctx := c.Request().Context()

	var buyerID, sellerID string
	var status Status
	err := db.Conn.QueryRow(ctx, `SELECT buyer_id, seller_id, status FROM orders WHERE id = $1`, orderID).Scan(&buyerID, &sellerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			return Order{}, false
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
		return Order{}, false
	}

	authorized := false
	switch allowed {
	case partyBuyer:
		authorized = userID == buyerID
	case partySeller:
		authorized = userID == sellerID
	case partyEither:
		authorized = userID == buyerID || userID == sellerID
	}
	if !authorized {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		return Order{}, false
	}

	if !status.CanTransitionTo(target) {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("cannot move order from %s to %s", status, target)})
		return Order{}, false
	}

	// The status predicate guards against a concurrent transition racing us.
	res, err := db.Conn.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		string(target), orderID, string(status))
	if err != nil || res.RowsAffected() == 0 {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order status"})
		return Order{}, false
	}

	order, err := fetchOrder(ctx, orderID)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
		return Order{}, false
	}
	return order, true
}

// StartOrder - seller begins work on a pending order
// POST /orders/:id/start
func StartOrder(c echo.Context) error {
	order, ok := transitionOrder(c, StatusInProgress, partySeller)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// CompleteOrder - buyer accepts the delivered work
// POST /orders/:id/complete
func CompleteOrder(c echo.Context) error {
	order, ok := transitionOrder(c, StatusCompleted, partyBuyer)
	if !ok {
		return nil
	}

	ctx := c.Request().Context()
	notifyOrderEvent(ctx, order.SellerID, order.ID, "order:completed", "Order completed",
		fmt.Sprintf("Order %s was marked complete by the buyer.", order.ID))
	if email := lookupEmail(ctx, order.SellerID); email != "" {
		_ = alerts.EnqueueOrderCompleted(order.ID, order.BuyerID, order.SellerID, email, order.Total)
	}

	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// CancelOrder - either participant cancels a non-terminal order
// POST /orders/:id/cancel
func CancelOrder(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	order, ok := transitionOrder(c, StatusCancelled, partyEither)
	if !ok {
		return nil
	}

	other := order.SellerID
	if userID == order.SellerID {
		other = order.BuyerID
	}

	ctx := c.Request().Context()
	notifyOrderEvent(ctx, other, order.ID, "order:cancelled", "Order cancelled",
		fmt.Sprintf("Order %s was cancelled.", order.ID))
	if email := lookupEmail(ctx, other); email != "" {
		_ = alerts.EnqueueOrderCancelled(order.ID, order.BuyerID, order.SellerID, email, order.Total)
	}

	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// DisputeOrder - either participant flags a non-terminal order
// POST /orders/:id/dispute
func DisputeOrder(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	order, ok := transitionOrder(c, StatusDisputed, partyEither)
	if !ok {
		return nil
	}

	other := order.SellerID
	if userID == order.SellerID {
		other = order.BuyerID
	}
	notifyOrderEvent(c.Request().Context(), other, order.ID, "order:disputed", "Order disputed",
		fmt.Sprintf("Order %s was flagged as disputed.", order.ID))

	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

func lookupEmail(ctx context.Context, userID string) string {
	var email string
	_ = db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	return email
}

// notifyOrderEvent records a best-effort in-app notification
func notifyOrderEvent(ctx context.Context, userID, orderID, eventType, title, body string) {
	_ = alerts.CreateNotification(ctx, userID, eventType, title, body, &orderID)
}
