package credentials

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/common"
)

type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Load returns the persisted credential, or "" when there is none.
func (s *Store) Load(ctx context.Context) (string, error) {
	data, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save persists token. An empty token clears the stored one.
func (s *Store) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.repo.Set(ctx, common.AuthTokenKey, []byte(token))
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AuthTokenKey)
}
