package donors

import "time"

// Donor types distinguish individual people from institutions. The two name
// shapes are mutually exclusive.
const (
	TypePerson      = "person"
	TypeInstitution = "institution"
)

// Donor represents a registered donor. Code is the externally visible
// identifier donations link back to; ID is internal.
type Donor struct {
	ID              int64
	Code            string
	Type            string
	FirstName       string
	LastName        string
	InstitutionName string
	Phone           string
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	PostalCode      string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// DisplayName returns the person or institution name by the type
// discriminator.
func (d Donor) DisplayName() string {
	if d.Type == TypeInstitution {
		return d.InstitutionName
	}
	name := d.FirstName
	if d.LastName != "" {
		if name != "" {
			name += " "
		}
		name += d.LastName
	}
	return name
}
