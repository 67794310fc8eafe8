package lookup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

func taxonomy() []model.CapabilityTaxonomyEntry {
	return []model.CapabilityTaxonomyEntry{
		{L1: "Payments", L2: "Clearing", L3: "Settlement"},
		{L1: "Payments", L2: "Clearing", L3: "Netting"},
		{L1: "Payments", L2: "Acquiring", L3: "Card Present"},
		{L1: "Lending", L2: "Origination", L3: "Scoring"},
		{L1: "Lending", L2: "Origination", L3: "Scoring"}, // duplicate row
	}
}

func TestCapabilityOptionsCascade(t *testing.T) {
	opts := NewCapabilityOptions(taxonomy())

	assert.Equal(t, []string{"Payments", "Lending"}, opts.L1(), "first-seen order, deduplicated")
	assert.Equal(t, []string{"Clearing", "Acquiring"}, opts.L2("Payments"))
	assert.Equal(t, []string{"Settlement", "Netting"}, opts.L3("Payments", "Clearing"))
	assert.Equal(t, []string{"Scoring"}, opts.L3("Lending", "Origination"))
}

func TestCapabilityOptionsMatchingIsExact(t *testing.T) {
	opts := NewCapabilityOptions(taxonomy())
	assert.Empty(t, opts.L2("payments"), "label matching is case-sensitive")
	assert.Empty(t, opts.L2("Payments "))
	assert.Empty(t, opts.L3("Payments", "Origination"), "L2 must belong to the given L1")
}

func TestTechOptions(t *testing.T) {
	opts := NewTechOptions([]model.TechCatalogEntry{
		{ProductName: "PostgreSQL", ProductVersion: "15"},
		{ProductName: "PostgreSQL", ProductVersion: "16"},
		{ProductName: "Kafka", ProductVersion: "3.7"},
		{ProductName: "Kafka", ProductVersion: "3.7"},
	})
	assert.Equal(t, []string{"PostgreSQL", "Kafka"}, opts.Products())
	assert.Equal(t, []string{"15", "16"}, opts.Versions("PostgreSQL"))
	assert.Empty(t, opts.Versions("postgresql"))
}

type stubSource struct {
	capCalls  int
	techCalls int
}

func (s *stubSource) GetBusinessCapabilities(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error) {
	s.capCalls++
	return taxonomy(), nil
}

func (s *stubSource) GetTechComponents(ctx context.Context) ([]model.TechCatalogEntry, error) {
	s.techCalls++
	return []model.TechCatalogEntry{{ProductName: "Kafka", ProductVersion: "3.7"}}, nil
}

func TestCacheFetchesOnce(t *testing.T) {
	src := &stubSource{}
	cache := NewCache(src)

	for i := 0; i < 3; i++ {
		opts, err := cache.Capabilities(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, opts.L1())
	}
	assert.Equal(t, 1, src.capCalls)

	for i := 0; i < 2; i++ {
		opts, err := cache.Tech(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Kafka"}, opts.Products())
	}
	assert.Equal(t, 1, src.techCalls)
}
