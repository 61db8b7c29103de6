package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"futuresjournal/internal/domain"
	"futuresjournal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.TradeRepository and ports.UserRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from limiting connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		subscription TEXT NOT NULL DEFAULT 'free',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		status TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL DEFAULT 0,
		pnl REAL NOT NULL DEFAULT 0,
		commission REAL NOT NULL DEFAULT 0,
		fees REAL NOT NULL DEFAULT 0,
		swap REAL NOT NULL DEFAULT 0,
		stop_loss REAL NOT NULL DEFAULT 0,
		take_profit REAL NOT NULL DEFAULT 0,
		strategy TEXT NOT NULL DEFAULT '',
		timeframe TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_user_date ON trades (user_id, date);
	CREATE INDEX IF NOT EXISTS idx_trades_user_symbol ON trades (user_id, symbol);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- TradeRepository Implementation ---

// CreateTrade saves a new trade record.
func (r *Repository) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	const query = `
	INSERT INTO trades (id, user_id, date, symbol, side, status, quantity, entry_price, exit_price,
		pnl, commission, fees, swap, stop_loss, take_profit, strategy, timeframe, notes, tags,
		created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tags, err := encodeTags(trade.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query,
		trade.ID, trade.UserID, trade.Date, trade.Symbol, trade.Side, trade.Status,
		trade.Quantity, trade.EntryPrice, trade.ExitPrice, trade.PNL,
		trade.Commission, trade.Fees, trade.Swap, trade.StopLoss, trade.TakeProfit,
		trade.Strategy, trade.Timeframe, trade.Notes, tags,
		trade.CreatedAt, trade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to insert trade for user %s: %v", ports.ErrQueryFailed, trade.UserID, err)
	}
	return nil
}

// UpdateTrade modifies an existing trade owned by the same user.
func (r *Repository) UpdateTrade(ctx context.Context, trade *domain.Trade) error {
	const query = `
	UPDATE trades SET date = ?, symbol = ?, side = ?, status = ?, quantity = ?, entry_price = ?,
		exit_price = ?, pnl = ?, commission = ?, fees = ?, swap = ?, stop_loss = ?, take_profit = ?,
		strategy = ?, timeframe = ?, notes = ?, tags = ?, updated_at = ?
	WHERE id = ? AND user_id = ?`

	tags, err := encodeTags(trade.Tags)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query,
		trade.Date, trade.Symbol, trade.Side, trade.Status, trade.Quantity, trade.EntryPrice,
		trade.ExitPrice, trade.PNL, trade.Commission, trade.Fees, trade.Swap,
		trade.StopLoss, trade.TakeProfit, trade.Strategy, trade.Timeframe, trade.Notes, tags,
		trade.UpdatedAt, trade.ID, trade.UserID)
	if err != nil {
		return fmt.Errorf("%w: failed to update trade %s: %v", ports.ErrUpdateFailed, trade.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check update result for trade %s: %v", ports.ErrUpdateFailed, trade.ID, err)
	}
	if rows == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// DeleteTrade removes a trade by ID, scoped to its owner.
func (r *Repository) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	const query = `DELETE FROM trades WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, tradeID, userID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete trade %s: %v", ports.ErrDeleteFailed, tradeID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check delete result for trade %s: %v", ports.ErrDeleteFailed, tradeID, err)
	}
	if rows == 0 {
		return ports.ErrNotFound
	}
	return nil
}

const tradeColumns = `id, user_id, date, symbol, side, status, quantity, entry_price, exit_price,
	pnl, commission, fees, swap, stop_loss, take_profit, strategy, timeframe, notes, tags,
	created_at, updated_at`

// FindTradeByID retrieves a trade by its unique ID, scoped to its owner.
// Returns nil, nil if not found.
func (r *Repository) FindTradeByID(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = ? AND user_id = ?`

	trade, err := scanTrade(r.db.QueryRowContext(ctx, query, tradeID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to find trade %s: %v", ports.ErrQueryFailed, tradeID, err)
	}
	return trade, nil
}

// FindTradesByUser retrieves all trades for a user, ordered by trade date ascending.
func (r *Repository) FindTradesByUser(ctx context.Context, userID string) ([]*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = ? ORDER BY date ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query trades for user %s: %v", ports.ErrQueryFailed, userID, err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan trade row: %v", ports.ErrQueryFailed, err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: trade row iteration failed: %v", ports.ErrQueryFailed, err)
	}
	return trades, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTrade.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row scanner) (*domain.Trade, error) {
	var t domain.Trade
	var tags string
	err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.Symbol, &t.Side, &t.Status, &t.Quantity,
		&t.EntryPrice, &t.ExitPrice, &t.PNL, &t.Commission, &t.Fees, &t.Swap,
		&t.StopLoss, &t.TakeProfit, &t.Strategy, &t.Timeframe, &t.Notes, &tags,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode trade tags: %w", err)
	}
	return string(raw), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode trade tags: %w", err)
	}
	return tags, nil
}

// --- UserRepository Implementation ---

// CreateUser saves a new user account.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO users (id, email, name, password_hash, subscription, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Subscription,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ports.ErrDuplicateEntry
		}
		return fmt.Errorf("%w: failed to insert user %s: %v", ports.ErrQueryFailed, user.Email, err)
	}
	return nil
}

// UpdateUser modifies an existing user account.
func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	const query = `
	UPDATE users SET email = ?, name = ?, password_hash = ?, subscription = ?, updated_at = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Subscription, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to update user %s: %v", ports.ErrUpdateFailed, user.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check update result for user %s: %v", ports.ErrUpdateFailed, user.ID, err)
	}
	if rows == 0 {
		return ports.ErrNotFound
	}
	return nil
}

const userColumns = `id, email, name, password_hash, subscription, created_at, updated_at`

// FindUserByEmail retrieves a user by email. Returns nil, nil if not found.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.findUser(ctx, query, email)
}

// FindUserByID retrieves a user by ID. Returns nil, nil if not found.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.findUser(ctx, query, id)
}

func (r *Repository) findUser(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Subscription, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to find user: %v", ports.ErrQueryFailed, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
