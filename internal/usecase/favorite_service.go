package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/favorite"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// FavoriteService bookmarks teams, leagues and fixtures per user.
type FavoriteService struct {
	favoriteRepo favorite.Repository
	ids          idgen.Generator
	logger       *logging.Logger
}

func NewFavoriteService(favoriteRepo favorite.Repository, ids idgen.Generator, logger *logging.Logger) *FavoriteService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FavoriteService{favoriteRepo: favoriteRepo, ids: ids, logger: logger}
}

func (s *FavoriteService) Create(ctx context.Context, userID, kind string, refID int64) (favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Create")
	defer span.End()

	kind = strings.ToLower(strings.TrimSpace(kind))
	if !favorite.ValidKind(kind) {
		return favorite.Favorite{}, fmt.Errorf("%w: unknown favorite kind %q", ErrInvalidInput, kind)
	}
	if refID <= 0 {
		return favorite.Favorite{}, fmt.Errorf("%w: ref id must be greater than zero", ErrInvalidInput)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("generate favorite id: %w", err)
	}

	created := favorite.Favorite{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		RefID:     refID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.favoriteRepo.Create(ctx, created); err != nil {
		return favorite.Favorite{}, fmt.Errorf("create favorite: %w", err)
	}
	return created, nil
}

func (s *FavoriteService) ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.ListByUser")
	defer span.End()

	return s.favoriteRepo.ListByUser(ctx, userID)
}

func (s *FavoriteService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Delete")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: favorite id is required", ErrInvalidInput)
	}
	return s.favoriteRepo.Delete(ctx, userID, id)
}
