package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rentscope/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const propertyColumns = `
	id, title, description, property_type, unit_type, address, price,
	area_sqft, rating, total_ratings, available_from, created_at,
	is_active, is_available, other_facility, facilities, amenities
`

// ListProperties loads the full approved property collection. Filtering,
// searching, and ranking happen in memory; the query layer treats each row as
// an immutable value for the duration of a request.
func (r *PostgresRepository) ListProperties(ctx context.Context) ([]model.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE approved = true
		ORDER BY id
	`, propertyColumns)

	var props []model.Property
	if err := r.db.SelectContext(ctx, &props, query); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return props, nil
}

// GetPropertyByID retrieves a single property by its ID
func (r *PostgresRepository) GetPropertyByID(ctx context.Context, id int64) (*model.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE id = $1 AND approved = true
	`, propertyColumns)

	var p model.Property
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

// LogSearch logs a search query for later relevance tuning
func (r *PostgresRepository) LogSearch(ctx context.Context, queryText string, criteria *model.FilterCriteria, resultCount int, propertyIDs []int64, responseTimeMs int) error {
	ids := make([]string, len(propertyIDs))
	for i, id := range propertyIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}

	logQuery := `
		INSERT INTO search_logs (query, criteria, result_count, returned_property_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, logQuery, queryText, criteriaJSON(criteria), resultCount, "{"+strings.Join(ids, ",")+"}", responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogFeedback records a user action on a property returned by a search
func (r *PostgresRepository) LogFeedback(ctx context.Context, searchID string, propertyID int64, action string) error {
	query := `
		UPDATE search_logs
		SET clicked_property_id = $2, action = $3
		WHERE search_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, searchID, propertyID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}

// criteriaJSON renders criteria for the search log, empty object when absent.
func criteriaJSON(c *model.FilterCriteria) string {
	if c == nil {
		return "{}"
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}
