package messaging

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// Conversation is one order's thread seen from the caller's side. An order
// with no messages yet still gets a conversation, with a nil last message.
type Conversation struct {
	OrderID        string    `json:"order_id"`
	OrderStatus    string    `json:"order_status"`
	OtherUserID    string    `json:"other_user_id"`
	OtherUserName  string    `json:"other_user_name"`
	OtherUserImage string    `json:"other_user_image,omitempty"`
	GigID          *string   `json:"gig_id,omitempty"`
	GigTitle       *string   `json:"gig_title,omitempty"`
	LastMessage    *string   `json:"last_message"`
	LastSenderID   *string   `json:"last_sender_id,omitempty"`
	LastActivity   time.Time `json:"last_activity"`
	TotalMessages  int       `json:"total_messages"`
	UnreadCount    int       `json:"unread_count"`
}

// Message-less orders fall back to the order's own updated_at for the
// activity timestamp, so fresh orders sort by placement time.
const conversationsQuery = `
    SELECT o.id, o.status,
           ou.id, ou.name, COALESCE(ou.image,''),
           g.id, g.title,
           lm.content, lm.sender_id, COALESCE(lm.created_at, o.updated_at),
           stats.total, stats.unread
    FROM orders o
    JOIN users ou ON ou.id = CASE WHEN o.buyer_id = $1 THEN o.seller_id ELSE o.buyer_id END
    LEFT JOIN gigs g ON g.id = o.gig_id
    LEFT JOIN LATERAL (
        SELECT m.content, m.sender_id, m.created_at
        FROM messages m WHERE m.order_id = o.id
        ORDER BY m.created_at DESC LIMIT 1
    ) lm ON TRUE
    JOIN LATERAL (
        SELECT COUNT(*) AS total,
               COUNT(*) FILTER (WHERE m.receiver_id = $1 AND m.read_at IS NULL) AS unread
        FROM messages m WHERE m.order_id = o.id
    ) stats ON TRUE
    WHERE o.buyer_id = $1 OR o.seller_id = $1
    ORDER BY COALESCE(lm.created_at, o.updated_at) DESC`

// GetConversations lists every order thread the caller participates in,
// most recent activity first. The unread count is the number of messages
// addressed to the caller that have no read_at yet.
// GET /conversations
func GetConversations(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(), conversationsQuery, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch conversations"})
	}
	defer rows.Close()

	conversations := []Conversation{}
	for rows.Next() {
		var conv Conversation
		if err := rows.Scan(
			&conv.OrderID, &conv.OrderStatus,
			&conv.OtherUserID, &conv.OtherUserName, &conv.OtherUserImage,
			&conv.GigID, &conv.GigTitle,
			&conv.LastMessage, &conv.LastSenderID, &conv.LastActivity,
			&conv.TotalMessages, &conv.UnreadCount,
		); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse conversation record"})
		}
		conversations = append(conversations, conv)
	}

	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}
