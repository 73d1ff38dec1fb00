package organizations

import "time"

// Organization holds the branding and address data printed on receipts. The
// organization name also selects the receipt template variant.
type Organization struct {
	ID          string
	Name        string
	AddressLine string
	City        string
	HeaderImage string
	FooterImage string
	Logo        string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
