package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"volentia/internal/core/entity"
	"volentia/internal/core/id"
)

type mockCatalog struct {
	entity.BaseEntity
	Name     string  `db:"name" json:"name"`
	Province string  `db:"province" json:"province"`
	Ignored  string  `db:"-" json:"-"`
	NoTag    string  `json:"noTag"`
	LogoURL  *string `db:"logo_url" json:"logoUrl,omitempty"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{
		"id", "deletion_mark", "version", "created_at", "updated_at",
		"name", "province", "logo_url",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseEntity: entity.BaseEntity{
			ID:           id.New(),
			DeletionMark: true,
			Version:      5,
		},
		Name:     "Bergamo",
		Province: "BG",
		Ignored:  "skip me",
		NoTag:    "skip me too",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Bergamo", m["name"])
	assert.Equal(t, "BG", m["province"])
	assert.Nil(t, m["logo_url"])
	assert.NotContains(t, m, "-")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Name: "Pavia", Province: "PV"}
	m := StructToMap(cat)
	assert.Equal(t, "Pavia", m["name"])
}
