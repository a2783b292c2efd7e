package entities

// Service is a catalog entry (Stage 1, Solution EGR, ...). The catalog is
// read-only here; orders snapshot name and price at creation time.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}
