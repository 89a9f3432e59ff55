package model

// Dealership is a business location record. Creation and edit are restricted
// to business accounts; see the dealership repository.
type Dealership struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	PhoneNumber string   `json:"phoneNumber"`
	Email       string   `json:"email"`
	ImageURLs   []string `json:"imageUrls"`
	OwnerID     string   `json:"ownerId"`
	CreatedAt   int64    `json:"createdAt"`
}
