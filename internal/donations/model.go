package donations

import "time"

// Payment methods accepted for a donation.
const (
	MethodCash   = "Cash"
	MethodOnline = "Online"
	MethodCheque = "Cheque"
	MethodGPay   = "GPay"
)

// Donation represents a recorded donation. DonorCode references the donor's
// externally visible linkage code, not the internal row ID. ReceiptNo is the
// human-facing receipt sequence number printed on receipts.
type Donation struct {
	ID            string
	DonorCode     string
	Amount        float64
	Date          time.Time
	PaymentMethod string
	Purposes      []string
	ReceiptNo     int64
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Filter narrows donation listings and reports.
type Filter struct {
	DonorCode     string
	PaymentMethod string
	Purpose       string
	From          time.Time
	To            time.Time
}

// Summary aggregates the donations matching a filter.
type Summary struct {
	Count           int                `json:"count"`
	TotalAmount     float64            `json:"totalAmount"`
	ByPaymentMethod map[string]float64 `json:"byPaymentMethod"`
}

// ValidMethod reports whether the payment method is one of the accepted
// values.
func ValidMethod(method string) bool {
	switch method {
	case MethodCash, MethodOnline, MethodCheque, MethodGPay:
		return true
	default:
		return false
	}
}
