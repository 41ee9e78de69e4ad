package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SelectionMode controls how option items within a group combine.
type SelectionMode string

const (
	SelectionSingle   SelectionMode = "unico"
	SelectionMultiple SelectionMode = "multiplo"
)

type OptionItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OptionGroup struct {
	Name  string        `json:"name"`
	Mode  SelectionMode `json:"type"`
	Items []OptionItem  `json:"items"`
}

// Multiple reports whether the group uses checkbox semantics.
func (g OptionGroup) Multiple() bool {
	return g.Mode == SelectionMultiple
}

type Product struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Available   bool            `json:"available"`
	Options     []OptionGroup   `json:"options,omitempty"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
}

// BusinessProfile holds the storefront identity row from the Config sheet.
type BusinessProfile struct {
	CompanyName  string `json:"company_name"`
	Slogan       string `json:"slogan"`
	LogoURL      string `json:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

// Neighborhood carries a per-area delivery fee row. Fetched but not yet wired
// into order totals; the fee stays an extension point.
type Neighborhood struct {
	Name string          `json:"name"`
	Fee  decimal.Decimal `json:"fee"`
}

// Coupon carries a discount row. Fetched but not yet wired into order totals.
type Coupon struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Active   bool            `json:"active"`
}

// Catalog is the fully assembled result of one load: every source resolved,
// products attached to their categories in sheet order.
type Catalog struct {
	Categories    []Category     `json:"categories"`
	Products      []Product      `json:"products"`
	Profile       BusinessProfile `json:"profile"`
	Hours         WeekSchedule   `json:"hours"`
	Neighborhoods []Neighborhood `json:"neighborhoods,omitempty"`
	Coupons       []Coupon       `json:"coupons,omitempty"`
}

// ProductByID returns the product with the given ID, or nil.
func (c *Catalog) ProductByID(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

// Search filters products by a case-insensitive substring match over name and
// description.
func (c *Catalog) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Products
	}
	var matches []Product
	for _, p := range c.Products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matches = append(matches, p)
		}
	}
	return matches
}
