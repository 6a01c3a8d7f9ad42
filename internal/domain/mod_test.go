package domain_test

import (
	"testing"

	"htmm/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), domain.NextID(nil))

	records := []domain.InstalledModRecord{{ID: 3}, {ID: 7}, {ID: 2}}
	assert.Equal(t, int64(8), domain.NextID(records))
}

func TestProviderRef(t *testing.T) {
	projectID := int64(534982)
	rec := domain.InstalledModRecord{Provider: domain.ProviderCurseForge, ProjectID: &projectID}
	ref, ok := rec.ProviderRef()
	assert.True(t, ok)
	assert.Equal(t, "534982", ref)

	resourceID := "abc123"
	rec = domain.InstalledModRecord{Provider: domain.ProviderOrbis, ResourceID: &resourceID}
	ref, ok = rec.ProviderRef()
	assert.True(t, ok)
	assert.Equal(t, "abc123", ref)

	// Placeholders have no reference
	rec = domain.InstalledModRecord{Provider: domain.ProviderOrbis, Slug: domain.SlugUntracked}
	_, ok = rec.ProviderRef()
	assert.False(t, ok)
}

func TestVersionFile_BestName(t *testing.T) {
	assert.Equal(t, "a.jar", domain.VersionFile{FileName: "a.jar", DisplayName: "A"}.BestName())
	assert.Equal(t, "A", domain.VersionFile{DisplayName: "A"}.BestName())
	assert.Equal(t, "mod.jar", domain.VersionFile{}.BestName())
}
