package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and bootstraps the schema
func Init(databaseURL string) {
	var err error
	Conn, err = pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureUsersTable()
	ensureGigsTable()
	ensurePackagesTable()
	ensureOrdersTable()
	ensureMessagesTable()
	ensureReviewsTable()
	ensureNotificationsTable()
}

// ensureUsersTable creates the users table if missing
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            image TEXT,
            role TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('USER','SELLER','ADMIN')),
            title TEXT,
            description TEXT,
            hourly_rate DOUBLE PRECISION,
            level TEXT,
            response_time TEXT,
            skills TEXT[] NOT NULL DEFAULT '{}',
            languages TEXT[] NOT NULL DEFAULT '{}',
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	if err != nil {
		log.Printf("failed to ensure users table: %v", err)
	}
}

// ensureGigsTable creates the gigs table if missing
func ensureGigsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS gigs (
            id UUID PRIMARY KEY,
            seller_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            description TEXT NOT NULL,
            category TEXT NOT NULL,
            subcategory TEXT,
            price DOUBLE PRECISION NOT NULL,
            images TEXT[] NOT NULL DEFAULT '{}',
            published BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_gigs_seller ON gigs(seller_id);
        CREATE INDEX IF NOT EXISTS idx_gigs_category ON gigs(category) WHERE published;
    `)
	if err != nil {
		log.Printf("failed to ensure gigs table: %v", err)
	}
}

// ensurePackagesTable creates the packages table if missing
func ensurePackagesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS packages (
            id UUID PRIMARY KEY,
            gig_id UUID NOT NULL REFERENCES gigs(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            description TEXT,
            price DOUBLE PRECISION NOT NULL CHECK (price > 0),
            delivery_time INTEGER NOT NULL DEFAULT 1,
            revisions INTEGER NOT NULL DEFAULT 0 CHECK (revisions >= 0),
            features TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_packages_gig ON packages(gig_id);
    `)
	if err != nil {
		log.Printf("failed to ensure packages table: %v", err)
	}
}

// ensureOrdersTable creates the orders table if missing. Gig and package
// references go NULL on gig deletion so historical orders stay readable.
func ensureOrdersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            buyer_id UUID NOT NULL REFERENCES users(id),
            seller_id UUID NOT NULL REFERENCES users(id),
            gig_id UUID REFERENCES gigs(id) ON DELETE SET NULL,
            package_id UUID REFERENCES packages(id) ON DELETE SET NULL,
            total DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL DEFAULT 'PENDING'
                CHECK (status IN ('PENDING','IN_PROGRESS','COMPLETED','CANCELLED','DISPUTED')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders(seller_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_orders_gig ON orders(gig_id);
    `)
	if err != nil {
		log.Printf("failed to ensure orders table: %v", err)
	}
}

// ensureMessagesTable creates the messages table if missing
func ensureMessagesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS messages (
            id UUID PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            sender_id UUID NOT NULL REFERENCES users(id),
            receiver_id UUID NOT NULL REFERENCES users(id),
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            read_at TIMESTAMPTZ
        );
        CREATE INDEX IF NOT EXISTS idx_messages_order_created ON messages(order_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_messages_unread ON messages(order_id, receiver_id) WHERE read_at IS NULL;
    `)
	if err != nil {
		log.Printf("failed to ensure messages table: %v", err)
	}
}

// ensureReviewsTable creates the reviews table if missing. One review per
// order; the gig reference is nullable so reviews outlive a deleted gig.
func ensureReviewsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS reviews (
            id UUID PRIMARY KEY,
            order_id UUID NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
            gig_id UUID REFERENCES gigs(id) ON DELETE SET NULL,
            reviewer_id UUID NOT NULL REFERENCES users(id),
            reviewed_id UUID NOT NULL REFERENCES users(id),
            rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
            comment TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_reviews_gig ON reviews(gig_id);
        CREATE INDEX IF NOT EXISTS idx_reviews_reviewed ON reviews(reviewed_id);
    `)
	if err != nil {
		log.Printf("failed to ensure reviews table: %v", err)
	}
}

// ensureNotificationsTable creates the in-app notifications table if missing
func ensureNotificationsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL,
            title TEXT NOT NULL,
            body TEXT,
            reference UUID NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            read_at TIMESTAMPTZ NULL
        );
        CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read_at IS NULL;
    `)
	if err != nil {
		log.Printf("failed to ensure notifications table: %v", err)
	}
}
