package domain

import "time"

// User represents a registered account owning journaled trades.
type User struct {
	ID           string           // Unique identifier (UUID)
	Email        string           // Login email, unique
	Name         string           // Display name
	PasswordHash string           // bcrypt hash, never exposed over the API
	Subscription SubscriptionTier // free or premium
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
