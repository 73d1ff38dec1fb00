package donors

import "time"

// DonorRequest is the inbound shape for create/update.
type DonorRequest struct {
	Code            string `json:"code,omitempty"`
	Type            string `json:"type"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	InstitutionName string `json:"institutionName,omitempty"`
	Phone           string `json:"phone,omitempty"`
	AddressLine1    string `json:"addressLine1,omitempty"`
	AddressLine2    string `json:"addressLine2,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
}

// DonorResponse is the outward-facing representation of a donor.
type DonorResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Type            string    `json:"type"`
	DisplayName     string    `json:"displayName"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	InstitutionName string    `json:"institutionName,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	AddressLine1    string    `json:"addressLine1,omitempty"`
	AddressLine2    string    `json:"addressLine2,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	PostalCode      string    `json:"postalCode,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r DonorRequest) toModel() Donor {
	return Donor{
		Code:            r.Code,
		Type:            r.Type,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		InstitutionName: r.InstitutionName,
		Phone:           r.Phone,
		AddressLine1:    r.AddressLine1,
		AddressLine2:    r.AddressLine2,
		City:            r.City,
		State:           r.State,
		PostalCode:      r.PostalCode,
	}
}

func toResponse(d Donor) DonorResponse {
	return DonorResponse{
		ID:              d.ID,
		Code:            d.Code,
		Type:            d.Type,
		DisplayName:     d.DisplayName(),
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		InstitutionName: d.InstitutionName,
		Phone:           d.Phone,
		AddressLine1:    d.AddressLine1,
		AddressLine2:    d.AddressLine2,
		City:            d.City,
		State:           d.State,
		PostalCode:      d.PostalCode,
		CreatedAt:       d.CreatedAt,
	}
}
