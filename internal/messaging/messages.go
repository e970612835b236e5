package messaging

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/alerts"
	"github.com/okezie-dev/gigmarket/internal/db"
)

// Message is one entry in an order's conversation thread
type Message struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	SenderID      string     `json:"sender_id"`
	ReceiverID    string     `json:"receiver_id"`
	Content       string     `json:"content"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	SenderName    string     `json:"sender_name"`
	SenderImage   string     `json:"sender_image,omitempty"`
	ReceiverName  string     `json:"receiver_name"`
	ReceiverImage string     `json:"receiver_image,omitempty"`
}

const maxMessageLength = 5000

// orderParties loads both sides of an order thread
func orderParties(c echo.Context, orderID string) (buyerID, sellerID string, ok bool) {
	err := db.Conn.QueryRow(c.Request().Context(),
		`SELECT buyer_id, seller_id FROM orders WHERE id = $1`, orderID,
	).Scan(&buyerID, &sellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			return "", "", false
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
		return "", "", false
	}
	return buyerID, sellerID, true
}

// ListMessages returns an order's thread, oldest first
// GET /messages?orderId=...&since=RFC3339
func ListMessages(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.QueryParam("orderId")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId is required"})
	}

	buyerID, sellerID, ok := orderParties(c, orderID)
	if !ok {
		return nil
	}
	if !isParticipant(userID, buyerID, sellerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	query := `
        SELECT m.id, m.order_id, m.sender_id, m.receiver_id, m.content, m.read_at, m.created_at,
               s.name, COALESCE(s.image,''), r.name, COALESCE(r.image,'')
        FROM messages m
        JOIN users s ON s.id = m.sender_id
        JOIN users r ON r.id = m.receiver_id
        WHERE m.order_id = $1`
	args := []any{orderID}

	if since := c.QueryParam("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "since must be an RFC3339 timestamp"})
		}
		args = append(args, ts)
		query += fmt.Sprintf(" AND m.created_at > $%d", len(args))
	}
	query += " ORDER BY m.created_at ASC"

	rows, err := db.Conn.Query(c.Request().Context(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch messages"})
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.OrderID, &m.SenderID, &m.ReceiverID, &m.Content, &m.ReadAt, &m.CreatedAt,
			&m.SenderName, &m.SenderImage, &m.ReceiverName, &m.ReceiverImage,
		); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse message record"})
		}
		messages = append(messages, m)
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// SendMessage posts a message into an order's thread
// POST /messages
func SendMessage(c echo.Context) error {
	senderID, ok := c.Get("user_id").(string)
	if !ok || senderID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		OrderID    string `json:"orderId"`
		ReceiverID string `json:"receiverId"`
		Content    string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.OrderID == "" || req.ReceiverID == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId, receiverId and content are required"})
	}
	if len(req.Content) > maxMessageLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message too long"})
	}

	buyerID, sellerID, ok := orderParties(c, req.OrderID)
	if !ok {
		return nil
	}
	if !isParticipant(senderID, buyerID, sellerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}
	if !validReceiver(senderID, req.ReceiverID, buyerID, sellerID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid receiver"})
	}

	ctx := c.Request().Context()

	var m Message
	err := db.Conn.QueryRow(ctx, `
        INSERT INTO messages (id, order_id, sender_id, receiver_id, content)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, order_id, sender_id, receiver_id, content, read_at, created_at
    `, uuid.New().String(), req.OrderID, senderID, req.ReceiverID, req.Content).Scan(
		&m.ID, &m.OrderID, &m.SenderID, &m.ReceiverID, &m.Content, &m.ReadAt, &m.CreatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
	}

	var senderName string
	_ = db.Conn.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, senderID).Scan(&senderName)
	m.SenderName = senderName

	_ = alerts.CreateNotification(ctx, req.ReceiverID, "message:new", "New message",
		fmt.Sprintf("%s sent you a message.", senderName), &req.OrderID)

	var receiverEmail string
	_ = db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, req.ReceiverID).Scan(&receiverEmail)
	if receiverEmail != "" {
		_ = alerts.EnqueueMessageNew(req.OrderID, senderID, req.ReceiverID, receiverEmail, senderName)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": m})
}

// MarkThreadRead marks every message addressed to the caller in a thread as read
// POST /messages/read
func MarkThreadRead(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.Bind(&req); err != nil || req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId is required"})
	}

	buyerID, sellerID, ok := orderParties(c, req.OrderID)
	if !ok {
		return nil
	}
	if !isParticipant(userID, buyerID, sellerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	res, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE messages SET read_at = NOW()
        WHERE order_id = $1 AND receiver_id = $2 AND read_at IS NULL
    `, req.OrderID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to mark messages read"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "marked": res.RowsAffected()})
}
