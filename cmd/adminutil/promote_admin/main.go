package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/okezie-dev/gigmarket/internal/config"
	"github.com/okezie-dev/gigmarket/internal/db"
)

func main() {
	email := flag.String("email", "", "Email of the user to promote to admin")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_admin/main.go -email user@example.com")
	}

	cfg := config.Load()
	db.Init(cfg.DatabaseURL)

	ct, err := db.Conn.Exec(context.Background(), `UPDATE users SET role = 'ADMIN' WHERE email = $1`, *email)
	if err != nil {
		log.Fatalf("failed to promote user to admin: %v", err)
	}
	if ct.RowsAffected() == 0 {
		log.Fatalf("no user found with email: %s", *email)
	}

	fmt.Printf("User %s promoted to admin.\n", *email)
}
