package marketplace

import "time"

// Gig is a seller's published service listing. Price is derived: the
// cheapest package price when packages exist, otherwise the flat price
// supplied at creation.
type Gig struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Package is one priced delivery tier of a gig
type Package struct {
	ID           string    `json:"id"`
	GigID        string    `json:"gig_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	DeliveryTime int       `json:"delivery_time"`
	Revisions    int       `json:"revisions"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
}

// PackageInput is the client-supplied shape for creating or replacing a
// gig's package set
type PackageInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	DeliveryTime int      `json:"delivery_time"`
	Revisions    int      `json:"revisions"`
	Features     []string `json:"features"`
}

// GigSummary is a catalog search result row with aggregated fields. Price
// and delivery time come from the cheapest package when one exists.
type GigSummary struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Subcategory  string    `json:"subcategory,omitempty"`
	Price        float64   `json:"price"`
	DeliveryTime *int      `json:"delivery_time,omitempty"`
	Images       []string  `json:"images"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	SellerName   string    `json:"seller_name"`
	SellerImage  string    `json:"seller_image,omitempty"`
	SellerLevel  string    `json:"seller_level,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the display identity joined onto orders and messages
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// OrderGigSummary is the gig subset joined onto orders. Nil references
// mean the gig was deleted after the order was placed.
type OrderGigSummary struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// OrderPackageSummary is the package subset joined onto orders
type OrderPackageSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DeliveryTime int     `json:"delivery_time"`
	Revisions    int     `json:"revisions"`
}

// Order is a buyer's purchase of one package of one gig
type Order struct {
	ID        string               `json:"id"`
	BuyerID   string               `json:"buyer_id"`
	SellerID  string               `json:"seller_id"`
	Total     float64              `json:"total"`
	Status    Status               `json:"status"`
	Buyer     UserSummary          `json:"buyer"`
	Seller    UserSummary          `json:"seller"`
	Gig       *OrderGigSummary     `json:"gig"`
	Package   *OrderPackageSummary `json:"package"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
