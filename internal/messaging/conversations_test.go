package messaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationsQueryKeepsMessagelessOrders(t *testing.T) {
	// The last-message join must be outer: an order with no messages yet
	// still produces a conversation row with NULL message columns.
	idx := strings.Index(conversationsQuery, "SELECT m.content")
	require.Greater(t, idx, 0)
	assert.Contains(t, conversationsQuery[:idx], "LEFT JOIN LATERAL")
}

func TestConversationsQueryFallsBackToOrderActivity(t *testing.T) {
	// With no messages the order's own updated_at drives both the reported
	// activity timestamp and the sort position.
	assert.Contains(t, conversationsQuery, "COALESCE(lm.created_at, o.updated_at)")
	assert.Contains(t, conversationsQuery, "ORDER BY COALESCE(lm.created_at, o.updated_at) DESC")
	assert.Equal(t, 1, strings.Count(conversationsQuery, "ORDER BY COALESCE"))
}

func TestConversationsQueryCountsUnreadForCaller(t *testing.T) {
	assert.Contains(t, conversationsQuery, "m.receiver_id = $1 AND m.read_at IS NULL")
	assert.Contains(t, conversationsQuery, "o.buyer_id = $1 OR o.seller_id = $1")
}
