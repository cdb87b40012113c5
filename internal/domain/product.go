package domain

// Product is a catalog entry held in the record store. The id is assigned by
// the store on creation and never changes.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category,omitempty"`
}
