package model

// MaxListingImages caps the number of images a single listing may carry.
const MaxListingImages = 5

// Car is a vehicle-for-sale record stored in the listings collection.
type Car struct {
	ID           string   `json:"id"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Mileage      int      `json:"mileage"`
	Condition    string   `json:"condition"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ImageURLs    []string `json:"imageUrls"`
	OwnerID      string   `json:"ownerId"`
	CreatedAt    int64    `json:"createdAt"`
}
