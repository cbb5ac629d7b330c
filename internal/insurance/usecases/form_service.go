package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"insurance-server/internal/infra/cache"
	"insurance-server/internal/insurance/domain"
)

const (
	_allFormsCacheKey = "forms:all"
	_formTypeCacheKey = "forms:type:%s"
	_defaultFormsTTL  = 10 * time.Minute
)

func NewFormService(repository TemplateRepository, formCache cache.Cache, ttl time.Duration) *SimpleFormService {
	if ttl <= 0 {
		ttl = _defaultFormsTTL
	}
	return &SimpleFormService{
		repository: repository,
		cache:      formCache,
		ttl:        ttl,
	}
}

var _ FormService = (*SimpleFormService)(nil)

// SimpleFormService serves form trees read through a cache. Cached entries
// hold the msgpack encoding of the transformed tree.
type SimpleFormService struct {
	repository TemplateRepository
	cache      cache.Cache
	ttl        time.Duration
}

func (s *SimpleFormService) AllForms(ctx context.Context) ([]domain.FormStructure, error) {
	data, err := s.cache.GetOrSet(ctx, _allFormsCacheKey, s.ttl, func() ([]byte, error) {
		records, err := s.repository.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		forms := make([]domain.FormStructure, 0, len(records))
		for _, record := range records {
			forms = append(forms, domain.Transform(record))
		}
		return encodeCached(forms)
	})
	if err != nil {
		slog.Error("getting all forms", slog.String("error", err.Error()))
		return nil, fmt.Errorf("getting all forms: %w", err)
	}

	var forms []domain.FormStructure
	if err := decodeCached(data, &forms); err != nil {
		s.cache.Delete(ctx, _allFormsCacheKey)
		return nil, fmt.Errorf("decoding cached forms: %w", err)
	}
	return forms, nil
}

func (s *SimpleFormService) FormByType(ctx context.Context, formType string) (domain.FormStructure, error) {
	key := fmt.Sprintf(_formTypeCacheKey, formType)
	data, err := s.cache.GetOrSet(ctx, key, s.ttl, func() ([]byte, error) {
		record, err := s.repository.FindByType(ctx, formType)
		if err != nil {
			return nil, err
		}
		return encodeCached(domain.Transform(record))
	})
	if errors.Is(err, ErrTemplateNotFound) {
		return domain.FormStructure{}, ErrTemplateNotFound
	}
	if err != nil {
		slog.Error("getting form by type",
			slog.String("type", formType),
			slog.String("error", err.Error()))
		return domain.FormStructure{}, fmt.Errorf("getting form %s: %w", formType, err)
	}

	var form domain.FormStructure
	if err := decodeCached(data, &form); err != nil {
		s.cache.Delete(ctx, key)
		return domain.FormStructure{}, fmt.Errorf("decoding cached form: %w", err)
	}
	return form, nil
}

func (s *SimpleFormService) TemplateCount(ctx context.Context) (int64, error) {
	count, err := s.repository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return count, nil
}

// RefreshCache drops every cached form and loads them again.
func (s *SimpleFormService) RefreshCache(ctx context.Context) error {
	records, err := s.repository.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	s.cache.Delete(ctx, _allFormsCacheKey)
	for _, record := range records {
		s.cache.Delete(ctx, fmt.Sprintf(_formTypeCacheKey, record.Type))
	}

	if _, err := s.AllForms(ctx); err != nil {
		return err
	}
	for _, record := range records {
		if _, err := s.FormByType(ctx, record.Type); err != nil {
			return err
		}
	}

	slog.Debug("form cache refreshed", slog.Int("templates", len(records)))
	return nil
}
