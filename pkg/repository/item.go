package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/oddscope/pkg/domain"
)

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID           int64       `db:"id"`
	Title        string      `db:"title"`
	CanonicalURL string      `db:"canonical_url"`
	SourceType   string      `db:"source_type"`
	SourceName   string      `db:"source_name"`
	Summary      string      `db:"summary"`
	Tags         tagsSQL     `db:"tags"`
	Score        int         `db:"score"`
	Upvotes      int         `db:"upvotes"`
	Downvotes    int         `db:"downvotes"`
	Published    *time.Time  `db:"published"`
	Metadata     metadataSQL `db:"metadata"`
	CreatedAt    time.Time   `db:"created_at"`
}

// tagsSQL is a JSON array of tag strings for SQL operations
type tagsSQL []string

// Value implements driver.Valuer for database storage
func (t tagsSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *tagsSQL) Scan(value interface{}) error {
	if value == nil {
		*t = tagsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return json.Unmarshal([]byte("[]"), t)
	}

	return json.Unmarshal(data, t)
}

// metadataSQL is a JSON object of source metadata for SQL operations
type metadataSQL domain.Metadata

// Value implements driver.Valuer for database storage
func (m metadataSQL) Value() (driver.Value, error) {
	return json.Marshal(domain.Metadata(m))
}

// Scan implements sql.Scanner for database retrieval
func (m *metadataSQL) Scan(value interface{}) error {
	if value == nil {
		*m = metadataSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*m = metadataSQL{}
		return nil
	}

	return json.Unmarshal(data, (*domain.Metadata)(m))
}

// NewItemRepository creates a new item repository
func NewItemRepository(database *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: database}
}

// CreateItem inserts a new item, returning false when an item with the
// same canonical URL already exists. Retries on sqlite lock errors.
func (r *ItemRepository) CreateItem(ctx context.Context, item *domain.Item) (bool, error) {
	sqlItem := toSQLItem(item)

	query := `
		INSERT INTO items (
			title, canonical_url, source_type, source_name, summary,
			tags, score, published, metadata
		) VALUES (
			:title, :canonical_url, :source_type, :source_name, :summary,
			:tags, :score, :published, :metadata
		)
		ON CONFLICT(canonical_url) DO NOTHING
	`

	var created bool
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, sqlItem)
		if err != nil {
			if isBusyError(err) {
				return err // repeater will retry this
			}
			return &noRetryError{err: fmt.Errorf("create item: %w", err)}
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return &noRetryError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		if rows == 0 {
			created = false
			return nil
		}

		id, err := result.LastInsertId()
		if err != nil {
			return &noRetryError{err: fmt.Errorf("get insert id: %w", err)}
		}
		item.ID = id
		created = true
		return nil
	})
	return created, err
}

// GetItem retrieves an item by ID
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var sqlItem itemSQL
	err := r.db.GetContext(ctx, &sqlItem, "SELECT * FROM items WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return toDomainItem(&sqlItem), nil
}

// GetItems retrieves items matching the filter, highest score first
func (r *ItemRepository) GetItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error) {
	query := "SELECT * FROM items WHERE 1=1"
	args := []interface{}{}

	if filter.SourceType != "" {
		query += " AND source_type = ?"
		args = append(args, string(filter.SourceType))
	}
	if filter.MinScore > 0 {
		query += " AND score >= ?"
		args = append(args, filter.MinScore)
	}
	if filter.Tag != "" {
		query += " AND EXISTS (SELECT 1 FROM json_each(items.tags) WHERE json_each.value = ?)"
		args = append(args, filter.Tag)
	}

	query += " ORDER BY score DESC, published DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var sqlItems []itemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, query, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	items := make([]domain.Item, len(sqlItems))
	for i := range sqlItems {
		items[i] = *toDomainItem(&sqlItems[i])
	}
	return items, nil
}

// CountItems returns the number of items matching the filter
func (r *ItemRepository) CountItems(ctx context.Context, filter domain.ItemFilter) (int, error) {
	query := "SELECT COUNT(*) FROM items WHERE 1=1"
	args := []interface{}{}

	if filter.SourceType != "" {
		query += " AND source_type = ?"
		args = append(args, string(filter.SourceType))
	}
	if filter.MinScore > 0 {
		query += " AND score >= ?"
		args = append(args, filter.MinScore)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// UpdateVotes adjusts the vote counters for an item. Retries on lock
// errors since votes race with pipeline writes.
func (r *ItemRepository) UpdateVotes(ctx context.Context, id int64, up bool) error {
	column := "downvotes"
	if up {
		column = "upvotes"
	}
	query := fmt.Sprintf("UPDATE items SET %s = %s + 1 WHERE id = ?", column, column)

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, id)
		if err != nil {
			if isBusyError(err) {
				return err // repeater will retry this
			}
			return &noRetryError{err: fmt.Errorf("update votes: %w", err)}
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return &noRetryError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		if rows == 0 {
			return &noRetryError{err: fmt.Errorf("item %d not found", id)}
		}
		return nil
	})
}

func toSQLItem(item *domain.Item) *itemSQL {
	var published *time.Time
	if !item.Published.IsZero() {
		published = &item.Published
	}
	return &itemSQL{
		Title:        item.Title,
		CanonicalURL: item.CanonicalURL,
		SourceType:   string(item.SourceType),
		SourceName:   item.SourceName,
		Summary:      item.Summary,
		Tags:         tagsSQL(item.Tags),
		Score:        item.Score,
		Published:    published,
		Metadata:     metadataSQL(item.Metadata),
	}
}

func toDomainItem(sqlItem *itemSQL) *domain.Item {
	var published time.Time
	if sqlItem.Published != nil {
		published = *sqlItem.Published
	}
	return &domain.Item{
		ID:           sqlItem.ID,
		Title:        sqlItem.Title,
		CanonicalURL: sqlItem.CanonicalURL,
		SourceType:   domain.SourceType(sqlItem.SourceType),
		SourceName:   sqlItem.SourceName,
		Summary:      sqlItem.Summary,
		Tags:         sqlItem.Tags,
		Score:        sqlItem.Score,
		Upvotes:      sqlItem.Upvotes,
		Downvotes:    sqlItem.Downvotes,
		Published:    published,
		Metadata:     domain.Metadata(sqlItem.Metadata),
		CreatedAt:    sqlItem.CreatedAt,
	}
}
