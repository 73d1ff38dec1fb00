package donations

import "time"

const dateLayout = "2006-01-02"

// DonationRequest is the inbound shape for create/update. Date is ISO
// (YYYY-MM-DD).
type DonationRequest struct {
	DonorCode     string   `json:"donorCode"`
	Amount        float64  `json:"amount"`
	Date          string   `json:"date"`
	PaymentMethod string   `json:"paymentMethod"`
	Purposes      []string `json:"purposes"`
	Notes         string   `json:"notes,omitempty"`
}

// DonationResponse is the outward-facing representation of a donation.
type DonationResponse struct {
	ID            string    `json:"id"`
	DonorCode     string    `json:"donorCode"`
	Amount        float64   `json:"amount"`
	Date          string    `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	Purposes      []string  `json:"purposes"`
	ReceiptNo     int64     `json:"receiptNo"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r DonationRequest) toModel() (Donation, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return Donation{}, ErrInvalidInput
	}
	return Donation{
		DonorCode:     r.DonorCode,
		Amount:        r.Amount,
		Date:          date,
		PaymentMethod: r.PaymentMethod,
		Purposes:      r.Purposes,
		Notes:         r.Notes,
	}, nil
}

func toResponse(d Donation) DonationResponse {
	return DonationResponse{
		ID:            d.ID,
		DonorCode:     d.DonorCode,
		Amount:        d.Amount,
		Date:          d.Date.Format(dateLayout),
		PaymentMethod: d.PaymentMethod,
		Purposes:      d.Purposes,
		ReceiptNo:     d.ReceiptNo,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
	}
}
