package model

// User is a profile document keyed by the auth identity. It is created at
// registration with email and the business flag, and merged with the profile
// fields afterwards.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	City         string `json:"city"`
	AvatarURL    string `json:"avatarUrl"`
	IsBusiness   bool   `json:"isBusiness"`
	PasswordHash string `json:"-"`
}
