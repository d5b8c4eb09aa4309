package main

import (
	"context"

	"github.com/umputun/oddscope/pkg/domain"
	"github.com/umputun/oddscope/pkg/repository"
)

// pipelineStore adapts the repositories to the pipeline's Store interface
type pipelineStore struct {
	repos *repository.Repositories
}

func (p *pipelineStore) CreateItem(ctx context.Context, item *domain.Item) (bool, error) {
	return p.repos.Item.CreateItem(ctx, item)
}

func (p *pipelineStore) CreateRelationship(ctx context.Context, rel *domain.Relationship) error {
	return p.repos.Relationship.CreateRelationship(ctx, rel)
}

func (p *pipelineStore) GetItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error) {
	return p.repos.Item.GetItems(ctx, filter, limit, offset)
}

// serverStore adapts the repositories to the server's Database interface
type serverStore struct {
	repos *repository.Repositories
}

func (s *serverStore) GetItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error) {
	return s.repos.Item.GetItems(ctx, filter, limit, offset)
}

func (s *serverStore) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repos.Item.GetItem(ctx, id)
}

func (s *serverStore) CountItems(ctx context.Context, filter domain.ItemFilter) (int, error) {
	return s.repos.Item.CountItems(ctx, filter)
}

func (s *serverStore) UpdateVotes(ctx context.Context, id int64, up bool) error {
	return s.repos.Item.UpdateVotes(ctx, id, up)
}

func (s *serverStore) GetRelationships(ctx context.Context, minStrength float64, limit int) ([]domain.Relationship, error) {
	return s.repos.Relationship.GetRelationships(ctx, minStrength, limit)
}
