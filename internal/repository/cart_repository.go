package repository

import (
	"context"
	"fmt"

	"educk/internal/database"
	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const cartItemsQuery = `
	SELECT ci.course_id, c.title, c.price, c.discount_price, ci.added_at
	FROM cart_items ci
	JOIN courses c ON c.id = ci.course_id
	WHERE ci.user_id = $1
	ORDER BY ci.added_at, ci.course_id
`

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Items returns the user's cart joined with current course prices.
func (r *cartRepository) Items(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return r.items(ctx, r.pool, cartItemsQuery, userID)
}

// ItemsForUpdate locks the user's cart rows for the rest of tx.
func (r *cartRepository) ItemsForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.CartItem, error) {
	return r.items(ctx, tx, cartItemsQuery+" FOR UPDATE OF ci", userID)
}

func (r *cartRepository) items(ctx context.Context, q querier, query string, userID uuid.UUID) ([]model.CartItem, error) {
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.CourseID, &item.Title, &item.Price, &item.DiscountPrice, &item.AddedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Add puts a course in the cart.
func (r *cartRepository) Add(ctx context.Context, userID, courseID uuid.UUID) error {
	query := `INSERT INTO cart_items (user_id, course_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, userID, courseID); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return model.ErrAlreadyInCart
		case database.IsForeignKeyViolation(err) && database.ConstraintName(err) == "cart_items_course_id_fkey":
			return model.ErrCourseNotFound
		case database.IsForeignKeyViolation(err):
			return model.ErrUserNotFound
		}
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("course_id", courseID.String()).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// Remove takes a course out of the cart.
func (r *cartRepository) Remove(ctx context.Context, userID, courseID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND course_id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, courseID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("course_id", courseID.String()).
			Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotInCart
	}

	return nil
}

// Clear empties the cart.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.clear(ctx, r.pool, userID)
}

// ClearTx empties the cart within tx.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	return r.clear(ctx, tx, userID)
}

func (r *cartRepository) clear(ctx context.Context, q querier, userID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
