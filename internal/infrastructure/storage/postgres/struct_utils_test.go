package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Description string `db:"description" json:"description"`
	Ignored     string `db:"-" json:"ignored"`
	Untagged    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "deletion_mark", "version", "code", "name", "description"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Untagged")
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	cols := ExtractDBColumns[*mockCatalog]()
	assert.Contains(t, cols, "description")
}

func TestStructToMap(t *testing.T) {
	c := mockCatalog{
		Catalog:     entity.NewCatalog("HW", "Hardware"),
		Description: "tools and fasteners",
		Ignored:     "skip me",
	}
	c.DeletionMark = true
	c.Version = 5

	m := StructToMap(c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "HW", m["code"])
	assert.Equal(t, "Hardware", m["name"])
	assert.Equal(t, "tools and fasteners", m["description"])

	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)
}

func TestStructToMap_Pointer(t *testing.T) {
	c := &mockCatalog{Catalog: entity.NewCatalog("HW", "Hardware")}

	m := StructToMap(c)
	assert.Equal(t, "HW", m["code"])
	assert.False(t, id.IsNil(m["id"].(id.ID)))
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("hello"))
}
