package receipts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234.5, "1,234.50"},
		{500, "500.00"},
		{0, "0.00"},
		{123456.7, "1,23,456.70"},
		{12345678.9, "1,23,45,678.90"},
		{999.999, "1,000.00"},
		{-1234.5, "-1,234.50"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2024-03-05"); got != "05/03/2024" {
		t.Fatalf("formatDate = %q, want 05/03/2024", got)
	}
	if got := formatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("unparseable date changed to %q", got)
	}
}

func TestSelectTemplate(t *testing.T) {
	cases := []struct {
		org      string
		noCustom bool
		want     string
	}{
		{"Seeshan", true, tmplSeeshanNoText},
		{"Seeshan", false, tmplSeeshan},
		{"seeshan ", false, tmplSeeshan},
		{"Helping Hands Trust", false, tmplDefault},
		{"Helping Hands Trust", true, tmplDefaultNoText},
	}
	for _, tc := range cases {
		if got := selectTemplate(tc.org, tc.noCustom); got != tc.want {
			t.Errorf("selectTemplate(%q, %v) = %q, want %q", tc.org, tc.noCustom, got, tc.want)
		}
	}
}

func TestRenderFillsFormattedFields(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	req := RenderRequest{
		Organization: OrganizationInfo{Name: "Helping Hands Trust", AddressLine: "12 Temple St", City: "Chennai"},
		Donation: DonationInfo{
			Amount:    1234.5,
			Date:      "2024-03-05",
			Method:    "Cheque",
			Purposes:  []string{"Annadanam", "General Fund"},
			ReceiptNo: 17,
		},
		Message: "Thank you for your continued support.",
	}
	html, err := r.Render(req, "Asha Raman", "DNR00001")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"1,234.50",
		"05/03/2024",
		"Asha Raman",
		"DNR00001",
		"Receipt No: 17",
		"Annadanam, General Fund",
		"Thank you for your continued support.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderNoCustomMessageOmitsMessage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	req := RenderRequest{
		Organization:    OrganizationInfo{Name: "Seeshan"},
		Donation:        DonationInfo{Amount: 100, Date: "2024-01-01", Method: "Cash", ReceiptNo: 1},
		Message:         "should not appear",
		NoCustomMessage: true,
	}
	html, err := r.Render(req, "Kiran", "DNR00002")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "should not appear") {
		t.Fatal("no-text variant rendered the custom message")
	}
}

func TestInlineImagePassesThroughRemoteURLs(t *testing.T) {
	for _, src := range []string{"", "https://cdn.example.org/h.png", "data:image/png;base64,AAAA"} {
		if got := inlineImage(src); got != src {
			t.Errorf("inlineImage(%q) = %q, want unchanged", src, got)
		}
	}
}

func TestInlineImageEncodesLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got := inlineImage(path)
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("inlineImage = %q, want data URI", got)
	}
}
