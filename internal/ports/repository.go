package ports

import (
	"context"

	"futuresjournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving journaled trades.
type TradeRepository interface {
	// CreateTrade saves a new trade record.
	CreateTrade(ctx context.Context, trade *domain.Trade) error
	// UpdateTrade modifies an existing trade owned by the same user.
	UpdateTrade(ctx context.Context, trade *domain.Trade) error
	// DeleteTrade removes a trade by ID, scoped to its owner.
	DeleteTrade(ctx context.Context, userID, tradeID string) error
	// FindTradeByID retrieves a trade by its unique ID, scoped to its owner.
	// Returns nil, nil if not found.
	FindTradeByID(ctx context.Context, userID, tradeID string) (*domain.Trade, error)
	// FindTradesByUser retrieves all trades for a user, ordered by trade date ascending.
	FindTradesByUser(ctx context.Context, userID string) ([]*domain.Trade, error)
}

// UserRepository defines the interface for storing and retrieving user accounts.
type UserRepository interface {
	// CreateUser saves a new user account.
	CreateUser(ctx context.Context, user *domain.User) error
	// UpdateUser modifies an existing user account.
	UpdateUser(ctx context.Context, user *domain.User) error
	// FindUserByEmail retrieves a user by email. Returns nil, nil if not found.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindUserByID retrieves a user by ID. Returns nil, nil if not found.
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}
