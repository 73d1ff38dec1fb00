package receipts

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Four variants: the Seeshan organization carries its own layout, and each
// layout has a no-custom-message flavor.
const (
	tmplDefault       = "receipt.html"
	tmplDefaultNoText = "receipt_notext.html"
	tmplSeeshan       = "seeshan_receipt.html"
	tmplSeeshanNoText = "seeshan_receipt_notext.html"
)

// OrganizationInfo is the branding block printed on a rendered receipt.
type OrganizationInfo struct {
	Name        string `json:"name"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	HeaderImage string `json:"headerImage"`
	FooterImage string `json:"footerImage"`
	Logo        string `json:"logo"`
}

// DonationInfo carries the donation facts printed on a rendered receipt.
type DonationInfo struct {
	Amount    float64  `json:"amount"`
	Date      string   `json:"date"`
	Method    string   `json:"method"`
	Purposes  []string `json:"purposes"`
	ReceiptNo int64    `json:"receiptNo"`
}

// RenderRequest is the render-and-send payload: everything needed to produce
// a receipt PDF except the donor, which the pipeline looks up itself.
type RenderRequest struct {
	Organization    OrganizationInfo
	Donation        DonationInfo
	Message         string
	NoCustomMessage bool
}

type renderData struct {
	Organization OrganizationInfo
	DonorName    string
	DonorCode    string
	ReceiptNo    int64
	Date         string
	Amount       string
	Method       string
	Purposes     string
	Message      string
}

// Renderer fills one of the embedded receipt templates with formatted
// donation data.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once at construction.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"isEqual": func(a, b string) bool { return a == b },
	}
	tmpl, err := template.New("receipts").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse receipt templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the receipt HTML for the given request and donor fields.
func (r *Renderer) Render(req RenderRequest, donorName, donorCode string) (string, error) {
	org := req.Organization
	org.HeaderImage = inlineImage(org.HeaderImage)
	org.FooterImage = inlineImage(org.FooterImage)
	org.Logo = inlineImage(org.Logo)

	data := renderData{
		Organization: org,
		DonorName:    donorName,
		DonorCode:    donorCode,
		ReceiptNo:    req.Donation.ReceiptNo,
		Date:         formatDate(req.Donation.Date),
		Amount:       formatAmount(req.Donation.Amount),
		Method:       req.Donation.Method,
		Purposes:     strings.Join(req.Donation.Purposes, ", "),
		Message:      req.Message,
	}

	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, selectTemplate(org.Name, req.NoCustomMessage), data); err != nil {
		return "", fmt.Errorf("execute receipt template: %w", err)
	}
	return sb.String(), nil
}

func selectTemplate(orgName string, noCustomMessage bool) string {
	seeshan := strings.EqualFold(strings.TrimSpace(orgName), "Seeshan")
	switch {
	case seeshan && noCustomMessage:
		return tmplSeeshanNoText
	case seeshan:
		return tmplSeeshan
	case noCustomMessage:
		return tmplDefaultNoText
	default:
		return tmplDefault
	}
}

// inlineImage converts a local file path into a base64 data URI so the
// headless browser never issues file:// requests during the print. Remote
// URLs and unreadable paths pass through untouched.
func inlineImage(src string) string {
	if src == "" || strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return src
	}
	b, err := os.ReadFile(src)
	if err != nil {
		return src
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(src)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".svg":
		mime = "image/svg+xml"
	case ".webp":
		mime = "image/webp"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}
