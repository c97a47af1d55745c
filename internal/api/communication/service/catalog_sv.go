package communicationService

import (
	"context"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"
	contextPkg "GestureTalk/pkg/context"

	"github.com/sirupsen/logrus"
)

// Catalog is the immutable, ordered bank of static phrases driving Offline
// mode. It is loaded once per process and paginated into fixed windows;
// pages are slices over the backing array, never copies.
type Catalog struct {
	phrases  []entity.Phrase
	pageSize int
}

func NewCatalog(phrases []entity.Phrase, pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = 4
	}
	return &Catalog{phrases: phrases, pageSize: pageSize}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.phrases)
}

func (c *Catalog) PageCount() int {
	if c.Len() == 0 {
		return 0
	}
	return (len(c.phrases) + c.pageSize - 1) / c.pageSize
}

// Page returns the catalog window at index, up to pageSize phrases; the
// last page may be shorter. Out-of-bounds indexes return nil.
func (c *Catalog) Page(index int) []entity.Phrase {
	if c == nil || index < 0 || index*c.pageSize >= len(c.phrases) {
		return nil
	}
	start := index * c.pageSize
	end := start + c.pageSize
	if end > len(c.phrases) {
		end = len(c.phrases)
	}
	return c.phrases[start:end]
}

// RandomSample returns n distinct phrases drawn uniformly without
// replacement. A catalog smaller than n yields every phrase; this never
// errors.
func (c *Catalog) RandomSample(n int, shuffled []int) []entity.Phrase {
	if c.Len() == 0 || n <= 0 {
		return nil
	}
	if n > len(c.phrases) {
		n = len(c.phrases)
	}

	sample := make([]entity.Phrase, 0, n)
	for _, idx := range shuffled[:n] {
		sample = append(sample, c.phrases[idx])
	}
	return sample
}

// LoadCatalog reads the full phrase catalog from the configured source.
// Failure is fatal to Offline mode only: the service keeps running with an
// empty catalog and surfaces empty pages instead of crashing.
func (s *communicationService) LoadCatalog(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return communication.ErrCatalogUnavailable
	}

	phrases, err := repo.Phrases.GetAllPhrases(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load phrase catalog")

		s.catalogMu.Lock()
		s.catalog = NewCatalog(nil, s.config.PageSize)
		s.catalogMu.Unlock()

		return communication.ErrCatalogUnavailable
	}

	s.catalogMu.Lock()
	s.catalog = NewCatalog(phrases, s.config.PageSize)
	s.catalogMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"phrases":    len(phrases),
	}).Info("Phrase catalog loaded")

	return nil
}

func (s *communicationService) getCatalog() *Catalog {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()

	if s.catalog == nil {
		return NewCatalog(nil, s.config.PageSize)
	}
	return s.catalog
}

// catalogSample draws n random catalog phrases for the local fallback path.
func (s *communicationService) catalogSample(n int) []entity.Phrase {
	catalog := s.getCatalog()
	if catalog.Len() == 0 {
		return nil
	}
	return catalog.RandomSample(n, s.utils.ShuffledIndexes(catalog.Len()))
}
