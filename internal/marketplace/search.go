package marketplace

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okezie-dev/gigmarket/internal/db"
)

// gigFilters are the catalog search parameters. Pointer fields are
// unset filters.
type gigFilters struct {
	Category    string
	Query       string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	ProOnly     bool
	MinDelivery *int
	MaxDelivery *int
	Sort        string
	Limit       int
	Offset      int
}

// buildGigSearch renders the catalog query. Every filter lives in the SQL
// so the limit/offset window is exact. Price and delivery filters apply to
// the cheapest package, falling back to the gig's flat price.
func buildGigSearch(f gigFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT g.id, g.seller_id, g.title, g.description, g.category, COALESCE(g.subcategory,''),
       COALESCE(cp.price, g.price), cp.delivery_time, g.images,
       COALESCE(rv.avg_rating, 0), COALESCE(rv.review_count, 0),
       u.name, COALESCE(u.image,''), COALESCE(u.level,''), g.created_at
FROM gigs g
JOIN users u ON u.id = g.seller_id
LEFT JOIN LATERAL (
    SELECT p.price, p.delivery_time FROM packages p
    WHERE p.gig_id = g.id ORDER BY p.price ASC LIMIT 1
) cp ON TRUE
LEFT JOIN (
    SELECT gig_id, AVG(rating)::float AS avg_rating, COUNT(*) AS review_count
    FROM reviews WHERE gig_id IS NOT NULL GROUP BY gig_id
) rv ON rv.gig_id = g.id
WHERE g.published`)

	var args []any
	add := func(clause string, vals ...any) {
		rendered := clause
		for _, v := range vals {
			args = append(args, v)
			rendered = strings.Replace(rendered, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		sb.WriteString(" AND " + rendered)
	}

	if f.Category != "" {
		add("g.category = ?", f.Category)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		add("(g.title ILIKE ? OR g.description ILIKE ?)", pattern, pattern)
	}
	if f.MinPrice != nil {
		add("COALESCE(cp.price, g.price) >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("COALESCE(cp.price, g.price) <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		add("COALESCE(rv.avg_rating, 0) >= ?", *f.MinRating)
	}
	if f.ProOnly {
		sb.WriteString(" AND u.level = 'Pro'")
	}
	if f.MinDelivery != nil {
		add("cp.delivery_time >= ?", *f.MinDelivery)
	}
	if f.MaxDelivery != nil {
		add("cp.delivery_time <= ?", *f.MaxDelivery)
	}

	switch f.Sort {
	case "price-asc":
		sb.WriteString(" ORDER BY COALESCE(cp.price, g.price) ASC")
	case "price-desc":
		sb.WriteString(" ORDER BY COALESCE(cp.price, g.price) DESC")
	case "newest":
		sb.WriteString(" ORDER BY g.created_at DESC")
	default: // best
		sb.WriteString(" ORDER BY COALESCE(rv.avg_rating, 0) DESC, g.created_at DESC")
	}

	args = append(args, f.Limit, f.Offset)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	return sb.String(), args
}

// ListGigs is the public catalog search.
// GET /gigs
func ListGigs(c echo.Context) error {
	f := gigFilters{Sort: c.QueryParam("sort"), Limit: 20}

	if cat := c.QueryParam("category"); cat != "" && cat != "All Categories" {
		f.Category = cat
	}
	f.Query = c.QueryParam("query")
	f.ProOnly = c.QueryParam("pro") == "1"
	if v, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("rating"), 64); err == nil {
		f.MinRating = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("minDelivery")); err == nil {
		f.MinDelivery = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("maxDelivery")); err == nil {
		f.MaxDelivery = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		f.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		f.Offset = v
	}

	query, args := buildGigSearch(f)

	rows, err := db.Conn.Query(c.Request().Context(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch gigs"})
	}
	defer rows.Close()

	gigs := []GigSummary{}
	for rows.Next() {
		var g GigSummary
		if err := rows.Scan(
			&g.ID, &g.SellerID, &g.Title, &g.Description, &g.Category, &g.Subcategory,
			&g.Price, &g.DeliveryTime, &g.Images,
			&g.Rating, &g.ReviewCount,
			&g.SellerName, &g.SellerImage, &g.SellerLevel, &g.CreatedAt,
		); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse gig record"})
		}
		gigs = append(gigs, g)
	}

	return c.JSON(http.StatusOK, echo.Map{"gigs": gigs})
}
