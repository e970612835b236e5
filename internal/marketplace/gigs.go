package marketplace

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// gigRequest is the create/update body. Packages is a pointer so an update
// can tell an omitted field (keep the current tiers) from an explicit empty
// list (delete every tier).
type gigRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Price       float64         `json:"price"`
	Images      []string        `json:"images"`
	Packages    *[]PackageInput `json:"packages"`
	Published   *bool           `json:"published"`
}

// packageInputs unwraps the optional package list
func (r *gigRequest) packageInputs() []PackageInput {
	if r.Packages == nil {
		return nil
	}
	return *r.Packages
}

// CreateGig publishes a new gig with its package tiers
// POST /gigs
func CreateGig(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req gigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, description and category are required"})
	}

	price, err := computeGigPrice(req.Price, req.packageInputs())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}

	if req.Images == nil {
		req.Images = []string{}
	}
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	ctx := c.Request().Context()
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	gigID := uuid.New().String()
	var gig Gig
	err = tx.QueryRow(ctx, `
        INSERT INTO gigs (id, seller_id, title, description, category, subcategory, price, images, published)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
        RETURNING id, seller_id, title, description, category, COALESCE(subcategory,''), price, images, published, created_at, updated_at
    `, gigID, sellerID, req.Title, req.Description, req.Category, req.Subcategory, price, req.Images, published).Scan(
		&gig.ID, &gig.SellerID, &gig.Title, &gig.Description, &gig.Category, &gig.Subcategory,
		&gig.Price, &gig.Images, &gig.Published, &gig.CreatedAt, &gig.UpdatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create gig"})
	}

	packages, err := insertPackages(ctx, tx, gigID, req.packageInputs())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"gig": gig, "packages": packages})
}

// insertPackages writes a gig's package set inside the caller's transaction
func insertPackages(ctx context.Context, tx pgx.Tx, gigID string, inputs []PackageInput) ([]Package, error) {
	packages := []Package{}
	for _, in := range inputs {
		if in.Name == "" || !validPrice(in.Price) || in.Revisions < 0 {
			return nil, errors.New("invalid package")
		}
		if in.Features == nil {
			in.Features = []string{}
		}
		var p Package
		err := tx.QueryRow(ctx, `
            INSERT INTO packages (id, gig_id, name, description, price, delivery_time, revisions, features)
            VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
            RETURNING id, gig_id, name, COALESCE(description,''), price, delivery_time, revisions, features, created_at
        `, uuid.New().String(), gigID, in.Name, in.Description, in.Price, in.DeliveryTime, in.Revisions, in.Features).Scan(
			&p.ID, &p.GigID, &p.Name, &p.Description, &p.Price, &p.DeliveryTime, &p.Revisions, &p.Features, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

// UpdateGig rewrites a gig and replaces its entire package set. The price
// update and the package replacement run in one transaction so a crash
// cannot leave the derived price inconsistent with the packages.
// PUT /gigs/:id
func UpdateGig(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	gigID := c.Param("id")
	if gigID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing gig id"})
	}

	var req gigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	var ownerID string
	var currentPrice float64
	err := db.Conn.QueryRow(ctx, `SELECT seller_id, price FROM gigs WHERE id = $1`, gigID).Scan(&ownerID, &currentPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch gig"})
	}
	if ownerID != sellerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	// An omitted package list keeps the current tiers and derived price.
	// A present list (including an empty one) replaces the set; an empty
	// replacement needs a flat price to fall back to.
	price := currentPrice
	if req.Packages != nil {
		if price, err = computeGigPrice(req.Price, *req.Packages); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
		}
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	var gig Gig
	err = tx.QueryRow(ctx, `
        UPDATE gigs
        SET title = COALESCE(NULLIF($1, ''), title),
            description = COALESCE(NULLIF($2, ''), description),
            category = COALESCE(NULLIF($3, ''), category),
            subcategory = COALESCE(NULLIF($4, ''), subcategory),
            price = $5,
            published = COALESCE($6, published),
            updated_at = NOW()
        WHERE id = $7
        RETURNING id, seller_id, title, description, category, COALESCE(subcategory,''), price, images, published, created_at, updated_at
    `, req.Title, req.Description, req.Category, req.Subcategory, price, req.Published, gigID).Scan(
		&gig.ID, &gig.SellerID, &gig.Title, &gig.Description, &gig.Category, &gig.Subcategory,
		&gig.Price, &gig.Images, &gig.Published, &gig.CreatedAt, &gig.UpdatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update gig"})
	}

	packages := []Package{}
	if req.Packages != nil {
		// Destructive replace: old tiers are gone, ids regenerate.
		if _, err := tx.Exec(ctx, `DELETE FROM packages WHERE gig_id = $1`, gigID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not replace packages"})
		}
		if packages, err = insertPackages(ctx, tx, gigID, *req.Packages); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"gig": gig, "packages": packages})
}

// DeleteGig removes a gig and its packages. Deletion is refused while the
// gig still has orders in flight; completed and cancelled orders keep a
// NULL gig reference.
// DELETE /gigs/:id
func DeleteGig(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	gigID := c.Param("id")
	if gigID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing gig id"})
	}

	ctx := c.Request().Context()

	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT seller_id FROM gigs WHERE id = $1`, gigID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch gig"})
	}
	if ownerID != sellerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var activeOrders int
	err = db.Conn.QueryRow(ctx, `
        SELECT COUNT(*) FROM orders
        WHERE gig_id = $1 AND status IN ('PENDING','IN_PROGRESS','DISPUTED')
    `, gigID).Scan(&activeOrders)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check orders"})
	}
	if activeOrders > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "gig has active orders"})
	}

	if _, err := db.Conn.Exec(ctx, `DELETE FROM gigs WHERE id = $1`, gigID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete gig"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetGig returns the full detail view: seller profile, packages ordered by
// price, the ten most recent reviews and both gig-level and seller-level
// average ratings.
// GET /gigs/:id
func GetGig(c echo.Context) error {
	gigID := c.Param("id")
	if gigID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing gig id"})
	}

	ctx := c.Request().Context()

	var gig Gig
	err := db.Conn.QueryRow(ctx, `
        SELECT id, seller_id, title, description, category, COALESCE(subcategory,''), price, images, published, created_at, updated_at
        FROM gigs WHERE id = $1
    `, gigID).Scan(
		&gig.ID, &gig.SellerID, &gig.Title, &gig.Description, &gig.Category, &gig.Subcategory,
		&gig.Price, &gig.Images, &gig.Published, &gig.CreatedAt, &gig.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch gig"})
	}

	type sellerProfile struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Image        string   `json:"image,omitempty"`
		Level        string   `json:"level,omitempty"`
		Title        string   `json:"title,omitempty"`
		Description  string   `json:"description,omitempty"`
		ResponseTime string   `json:"response_time,omitempty"`
		Skills       []string `json:"skills"`
		Languages    []string `json:"languages"`
		GigCount     int      `json:"gig_count"`
		Rating       float64  `json:"rating"`
		ReviewCount  int      `json:"review_count"`
	}

	var seller sellerProfile
	err = db.Conn.QueryRow(ctx, `
        SELECT u.id, u.name, COALESCE(u.image,''), COALESCE(u.level,''), COALESCE(u.title,''),
               COALESCE(u.description,''), COALESCE(u.response_time,''), u.skills, u.languages,
               (SELECT COUNT(*) FROM gigs WHERE seller_id = u.id AND published)
        FROM users u WHERE u.id = $1
    `, gig.SellerID).Scan(
		&seller.ID, &seller.Name, &seller.Image, &seller.Level, &seller.Title,
		&seller.Description, &seller.ResponseTime, &seller.Skills, &seller.Languages,
		&seller.GigCount,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch seller"})
	}

	pkgRows, err := db.Conn.Query(ctx, `
        SELECT id, gig_id, name, COALESCE(description,''), price, delivery_time, revisions, features, created_at
        FROM packages WHERE gig_id = $1 ORDER BY price ASC
    `, gigID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch packages"})
	}
	defer pkgRows.Close()

	packages := []Package{}
	for pkgRows.Next() {
		var p Package
		if err := pkgRows.Scan(&p.ID, &p.GigID, &p.Name, &p.Description, &p.Price, &p.DeliveryTime, &p.Revisions, &p.Features, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse package record"})
		}
		packages = append(packages, p)
	}

	type reviewView struct {
		ID            string    `json:"id"`
		Rating        int       `json:"rating"`
		Comment       string    `json:"comment,omitempty"`
		ReviewerName  string    `json:"reviewer_name"`
		ReviewerImage string    `json:"reviewer_image,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}

	reviewRows, err := db.Conn.Query(ctx, `
        SELECT r.id, r.rating, COALESCE(r.comment,''), u.name, COALESCE(u.image,''), r.created_at
        FROM reviews r JOIN users u ON u.id = r.reviewer_id
        WHERE r.gig_id = $1 ORDER BY r.created_at DESC LIMIT 10
    `, gigID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reviews"})
	}
	defer reviewRows.Close()

	reviews := []reviewView{}
	for reviewRows.Next() {
		var r reviewView
		if err := reviewRows.Scan(&r.ID, &r.Rating, &r.Comment, &r.ReviewerName, &r.ReviewerImage, &r.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse review record"})
		}
		reviews = append(reviews, r)
	}

	gigRating := averageRating(fetchRatings(ctx, `SELECT rating FROM reviews WHERE gig_id = $1`, gigID))
	sellerRatings := fetchRatings(ctx, `SELECT rating FROM reviews WHERE reviewed_id = $1`, gig.SellerID)
	seller.Rating = averageRating(sellerRatings)
	seller.ReviewCount = len(sellerRatings)

	return c.JSON(http.StatusOK, echo.Map{
		"gig":      gig,
		"seller":   seller,
		"packages": packages,
		"reviews":  reviews,
		"rating":   gigRating,
	})
}

// fetchRatings loads raw rating values for one aggregate computation
func fetchRatings(ctx context.Context, query, arg string) []int {
	rows, err := db.Conn.Query(ctx, query, arg)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return ratings
		}
		ratings = append(ratings, r)
	}
	return ratings
}

// GetUserGigs returns all gigs created by the authenticated seller
// GET /gigs/me
func GetUserGigs(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, seller_id, title, description, category, COALESCE(subcategory,''), price, images, published, created_at, updated_at
        FROM gigs WHERE seller_id = $1 ORDER BY created_at DESC
    `, sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch gigs"})
	}
	defer rows.Close()

	gigs := []Gig{}
	for rows.Next() {
		var g Gig
		if err := rows.Scan(&g.ID, &g.SellerID, &g.Title, &g.Description, &g.Category, &g.Subcategory, &g.Price, &g.Images, &g.Published, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse gig record"})
		}
		gigs = append(gigs, g)
	}

	return c.JSON(http.StatusOK, echo.Map{"gigs": gigs})
}
