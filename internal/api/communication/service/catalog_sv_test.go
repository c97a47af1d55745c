package communicationService

import (
	"context"
	"testing"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPaging(t *testing.T) {
	catalog := NewCatalog(catalogPhrases(10), 4)

	assert.Equal(t, 10, catalog.Len())
	assert.Equal(t, 3, catalog.PageCount())

	require.Len(t, catalog.Page(0), 4)
	require.Len(t, catalog.Page(1), 4)
	require.Len(t, catalog.Page(2), 2)

	assert.Nil(t, catalog.Page(3))
	assert.Nil(t, catalog.Page(-1))

	assert.Equal(t, "c1", catalog.Page(0)[0].ID)
	assert.Equal(t, "c5", catalog.Page(1)[0].ID)
	assert.Equal(t, "c9", catalog.Page(2)[0].ID)
}

func TestCatalogEmpty(t *testing.T) {
	catalog := NewCatalog(nil, 4)

	assert.Equal(t, 0, catalog.PageCount())
	assert.Nil(t, catalog.Page(0))
	assert.Nil(t, catalog.RandomSample(4, nil))
}

func TestCatalogRandomSample(t *testing.T) {
	phrases := catalogPhrases(12)
	catalog := NewCatalog(phrases, 4)
	shuffled := []int{5, 2, 9, 0, 7, 1, 3, 11, 4, 6, 8, 10}

	sample := catalog.RandomSample(8, shuffled)
	require.Len(t, sample, 8)

	seen := make(map[string]bool)
	for _, p := range sample {
		assert.False(t, seen[p.ID], "duplicate phrase %s in sample", p.ID)
		seen[p.ID] = true
	}

	// Asking for more than the catalog holds yields everything once.
	all := catalog.RandomSample(50, shuffled)
	assert.Len(t, all, 12)
}

func TestLoadCatalog(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12)})

	assert.Equal(t, 12, svc.getCatalog().Len())
	assert.Equal(t, 3, svc.getCatalog().PageCount())
}

func TestLoadCatalogFailure(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalogErr: assert.AnError})

	err := svc.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, communication.ErrCatalogUnavailable)

	// The service stays usable with an empty catalog.
	assert.Equal(t, 0, svc.getCatalog().Len())
	assert.Nil(t, svc.getCatalog().Page(0))
}

func TestCatalogSample(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12)})

	sample := svc.catalogSample(2 * entity.SuggestionPageSize)
	require.Len(t, sample, 8)

	seen := make(map[string]bool)
	for _, p := range sample {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}
