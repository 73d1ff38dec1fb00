package receipts

import "errors"

// Pipeline error taxonomy. Handlers map these to the HTTP contract; wrapped
// causes carry the collaborator detail.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrPhoneNotFound = errors.New("donor phone number not found")
	ErrRender        = errors.New("receipt render failed")
	ErrUpload        = errors.New("receipt upload failed")
	ErrDelivery      = errors.New("receipt delivery failed")
)
