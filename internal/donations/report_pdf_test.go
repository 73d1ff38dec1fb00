package donations

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderReportPDFProducesDocument(t *testing.T) {
	rows := []Donation{
		{
			ID:            "don-1",
			DonorCode:     "DNR00001",
			Amount:        1234.5,
			Date:          time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			PaymentMethod: MethodCheque,
			Purposes:      []string{"Building Fund"},
			ReceiptNo:     1,
		},
		{
			ID:            "don-2",
			DonorCode:     "DNR00002",
			Amount:        500,
			Date:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: MethodGPay,
			Purposes:      []string{"General Fund"},
			ReceiptNo:     2,
		},
	}

	out, err := RenderReportPDF(rows, Filter{PaymentMethod: ""})
	if err != nil {
		t.Fatalf("RenderReportPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF magic header, got %q", out[:min(8, len(out))])
	}
}
