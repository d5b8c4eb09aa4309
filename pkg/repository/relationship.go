package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/oddscope/pkg/domain"
)

// RelationshipRepository handles item relationship storage
type RelationshipRepository struct {
	db *sqlx.DB
}

// relationshipSQL represents a relationship for SQL operations
type relationshipSQL struct {
	ID        int64     `db:"id"`
	SourceID  int64     `db:"source_id"`
	TargetID  int64     `db:"target_id"`
	Type      string    `db:"type"`
	Strength  float64   `db:"strength"`
	CreatedAt time.Time `db:"created_at"`
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(database *sqlx.DB) *RelationshipRepository {
	return &RelationshipRepository{db: database}
}

// CreateRelationship upserts a relationship, refreshing the strength when
// the same pair and type already exist. Retries on sqlite lock errors.
func (r *RelationshipRepository) CreateRelationship(ctx context.Context, rel *domain.Relationship) error {
	query := `
		INSERT INTO relationships (source_id, target_id, type, strength)
		VALUES (:source_id, :target_id, :type, :strength)
		ON CONFLICT(source_id, target_id, type) DO UPDATE SET strength = excluded.strength
	`
	sqlRel := &relationshipSQL{
		SourceID: rel.SourceID,
		TargetID: rel.TargetID,
		Type:     string(rel.Type),
		Strength: rel.Strength,
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, sqlRel)
		if err != nil {
			if isBusyError(err) {
				return err // repeater will retry this
			}
			return &noRetryError{err: fmt.Errorf("create relationship: %w", err)}
		}
		if id, err := result.LastInsertId(); err == nil && id > 0 {
			rel.ID = id
		}
		return nil
	})
}

// GetRelationships retrieves the strongest relationships, optionally
// filtered by minimum strength
func (r *RelationshipRepository) GetRelationships(ctx context.Context, minStrength float64, limit int) ([]domain.Relationship, error) {
	query := `
		SELECT * FROM relationships
		WHERE strength >= ?
		ORDER BY strength DESC
		LIMIT ?
	`
	var sqlRels []relationshipSQL
	if err := r.db.SelectContext(ctx, &sqlRels, query, minStrength, limit); err != nil {
		return nil, fmt.Errorf("get relationships: %w", err)
	}

	rels := make([]domain.Relationship, len(sqlRels))
	for i, sr := range sqlRels {
		rels[i] = domain.Relationship{
			ID:        sr.ID,
			SourceID:  sr.SourceID,
			TargetID:  sr.TargetID,
			Type:      domain.RelationType(sr.Type),
			Strength:  sr.Strength,
			CreatedAt: sr.CreatedAt,
		}
	}
	return rels, nil
}

// GetRelationshipsFor retrieves relationships touching an item
func (r *RelationshipRepository) GetRelationshipsFor(ctx context.Context, itemID int64) ([]domain.Relationship, error) {
	query := `
		SELECT * FROM relationships
		WHERE source_id = ? OR target_id = ?
		ORDER BY strength DESC
	`
	var sqlRels []relationshipSQL
	if err := r.db.SelectContext(ctx, &sqlRels, query, itemID, itemID); err != nil {
		return nil, fmt.Errorf("get relationships for item: %w", err)
	}

	rels := make([]domain.Relationship, len(sqlRels))
	for i, sr := range sqlRels {
		rels[i] = domain.Relationship{
			ID:        sr.ID,
			SourceID:  sr.SourceID,
			TargetID:  sr.TargetID,
			Type:      domain.RelationType(sr.Type),
			Strength:  sr.Strength,
			CreatedAt: sr.CreatedAt,
		}
	}
	return rels, nil
}

// DeleteAll clears the relationships table before a rebuild
func (r *RelationshipRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM relationships"); err != nil {
		return fmt.Errorf("delete relationships: %w", err)
	}
	return nil
}
