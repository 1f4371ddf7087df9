package models

// Service is a catalog entry for one of the agency's offerings. Catalog
// entries are fixed at build time; users never create them.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // meeting length in minutes
	Icon        string  `json:"icon"`
}
