package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	buyer    = "buyer-1"
	seller   = "seller-1"
	stranger = "stranger-1"
)

func TestIsParticipant(t *testing.T) {
	assert.True(t, isParticipant(buyer, buyer, seller))
	assert.True(t, isParticipant(seller, buyer, seller))
	assert.False(t, isParticipant(stranger, buyer, seller))
	assert.False(t, isParticipant("", buyer, seller))
}

func TestOtherParty(t *testing.T) {
	assert.Equal(t, seller, otherParty(buyer, buyer, seller))
	assert.Equal(t, buyer, otherParty(seller, buyer, seller))
	assert.Equal(t, "", otherParty(stranger, buyer, seller))
}

func TestValidReceiver(t *testing.T) {
	assert.True(t, validReceiver(buyer, seller, buyer, seller))
	assert.True(t, validReceiver(seller, buyer, buyer, seller))

	// Cannot message yourself.
	assert.False(t, validReceiver(buyer, buyer, buyer, seller))

	// Neither side may involve an outsider.
	assert.False(t, validReceiver(buyer, stranger, buyer, seller))
	assert.False(t, validReceiver(stranger, buyer, buyer, seller))
}
