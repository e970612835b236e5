package messaging

// isParticipant reports whether userID is one side of the order
func isParticipant(userID, buyerID, sellerID string) bool {
	return userID == buyerID || userID == sellerID
}

// otherParty returns the counterpart of userID on an order, or "" when
// userID is not a participant
func otherParty(userID, buyerID, sellerID string) string {
	switch userID {
	case buyerID:
		return sellerID
	case sellerID:
		return buyerID
	default:
		return ""
	}
}

// validReceiver checks that a message goes from one participant to the
// other, never to the sender or an outsider
func validReceiver(senderID, receiverID, buyerID, sellerID string) bool {
	other := otherParty(senderID, buyerID, sellerID)
	return other != "" && receiverID == other
}
