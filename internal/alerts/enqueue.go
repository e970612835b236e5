package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init("")
	}
	return client
}

func enqueueEmail(taskType string, payload any) error {
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(taskType, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueWelcomeEmail schedules a welcome email to a new user
func EnqueueWelcomeEmail(userID, email, name string) error {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	base = strings.TrimRight(base, "/")

	env := EmailEnvelope{
		To:      email,
		Subject: fmt.Sprintf("Welcome to GigMarket, %s!", name),
		Body:    fmt.Sprintf("Hi %s, thanks for joining GigMarket.\n\nOpen GigMarket: %s", name, base),
	}
	return enqueueEmail(TaskWelcomeEmail, WelcomeEmailPayload{
		UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now(),
	})
}

// EnqueueOrderPlaced notifies the seller that a buyer placed an order
func EnqueueOrderPlaced(orderID, buyerID, sellerID, sellerEmail string, amount float64) error {
	env := EmailEnvelope{
		To:      sellerEmail,
		Subject: "You received a new order",
		Body:    fmt.Sprintf("Order %s was placed. Amount %.2f. Start it from your dashboard when you are ready.", orderID, amount),
	}
	return enqueueEmail(TaskOrderPlaced, OrderEventPayload{
		OrderID: orderID, BuyerID: buyerID, SellerID: sellerID, Email: sellerEmail,
		Amount: amount, Envelope: env, SentAt: time.Now(),
	})
}

// EnqueueOrderCompleted notifies the seller that the buyer accepted the work
func EnqueueOrderCompleted(orderID, buyerID, sellerID, sellerEmail string, amount float64) error {
	env := EmailEnvelope{
		To:      sellerEmail,
		Subject: "Order completed",
		Body:    fmt.Sprintf("Order %s is completed. Amount %.2f.", orderID, amount),
	}
	return enqueueEmail(TaskOrderCompleted, OrderEventPayload{
		OrderID: orderID, BuyerID: buyerID, SellerID: sellerID, Email: sellerEmail,
		Amount: amount, Envelope: env, SentAt: time.Now(),
	})
}

// EnqueueOrderCancelled notifies the other participant of a cancellation
func EnqueueOrderCancelled(orderID, buyerID, sellerID, email string, amount float64) error {
	env := EmailEnvelope{
		To:      email,
		Subject: "Order cancelled",
		Body:    fmt.Sprintf("Order %s was cancelled. Amount %.2f.", orderID, amount),
	}
	return enqueueEmail(TaskOrderCancelled, OrderEventPayload{
		OrderID: orderID, BuyerID: buyerID, SellerID: sellerID, Email: email,
		Amount: amount, Envelope: env, SentAt: time.Now(),
	})
}

// EnqueueMessageNew notifies the recipient of a new order message
func EnqueueMessageNew(orderID, senderID, recipientID, recipientEmail, senderName string) error {
	env := EmailEnvelope{
		To:      recipientEmail,
		Subject: fmt.Sprintf("New message from %s", senderName),
		Body:    fmt.Sprintf("%s sent you a message on order %s. Open your inbox to reply.", senderName, orderID),
	}
	return enqueueEmail(TaskMessageNew, MessageNewPayload{
		OrderID: orderID, SenderID: senderID, Recipient: recipientID, Email: recipientEmail,
		Envelope: env, SentAt: time.Now(),
	})
}
