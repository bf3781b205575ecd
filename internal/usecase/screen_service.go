package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/giladtamam/football-insights-sub001/internal/domain/screen"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

const maxScreenFiltersBytes = 16 << 10

// ScreenService stores saved filter sets. The filter document is opaque to
// the backend beyond being well-formed JSON within the size cap.
type ScreenService struct {
	screenRepo screen.Repository
	ids        idgen.Generator
	logger     *logging.Logger
}

func NewScreenService(screenRepo screen.Repository, ids idgen.Generator, logger *logging.Logger) *ScreenService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScreenService{screenRepo: screenRepo, ids: ids, logger: logger}
}

func (s *ScreenService) Create(ctx context.Context, userID, name string, filters []byte) (screen.Screen, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScreenService.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return screen.Screen{}, fmt.Errorf("%w: screen name is required", ErrInvalidInput)
	}
	if err := validateScreenFilters(filters); err != nil {
		return screen.Screen{}, err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return screen.Screen{}, fmt.Errorf("generate screen id: %w", err)
	}

	now := time.Now().UTC()
	created := screen.Screen{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Filters:   filters,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.screenRepo.Create(ctx, created); err != nil {
		return screen.Screen{}, fmt.Errorf("create screen: %w", err)
	}
	return created, nil
}

func (s *ScreenService) ListByUser(ctx context.Context, userID string) ([]screen.Screen, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScreenService.ListByUser")
	defer span.End()

	return s.screenRepo.ListByUser(ctx, userID)
}

func (s *ScreenService) Update(ctx context.Context, userID, id, name string, filters []byte) (screen.Screen, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScreenService.Update")
	defer span.End()

	record, err := s.screenRepo.GetByID(ctx, userID, id)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("get screen: %w", err)
	}
	if record == nil {
		return screen.Screen{}, fmt.Errorf("%w: screen=%s", ErrNotFound, id)
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		record.Name = trimmed
	}
	if filters != nil {
		if err := validateScreenFilters(filters); err != nil {
			return screen.Screen{}, err
		}
		record.Filters = filters
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.screenRepo.Update(ctx, *record); err != nil {
		return screen.Screen{}, fmt.Errorf("update screen: %w", err)
	}
	return *record, nil
}

func (s *ScreenService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScreenService.Delete")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: screen id is required", ErrInvalidInput)
	}
	return s.screenRepo.Delete(ctx, userID, id)
}

func validateScreenFilters(filters []byte) error {
	if len(filters) == 0 {
		return fmt.Errorf("%w: screen filters are required", ErrInvalidInput)
	}
	if len(filters) > maxScreenFiltersBytes {
		return fmt.Errorf("%w: screen filters exceed %d bytes", ErrInvalidInput, maxScreenFiltersBytes)
	}
	var decoded any
	if err := sonic.Unmarshal(filters, &decoded); err != nil {
		return fmt.Errorf("%w: screen filters must be valid JSON", ErrInvalidInput)
	}
	return nil
}
