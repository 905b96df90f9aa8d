package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sweet_shop/internal/models"
)

func TestMigrate_BackfillsSearchColumns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := OpenMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(store) })

	sweet := models.Sweet{Name: "Éclair", Category: "Pâtisserie", Price: 3.5, Quantity: 1}
	require.NoError(t, store.Create(&sweet).Error)

	// Rows written before the search columns existed have them empty.
	require.NoError(t, store.Model(&sweet).UpdateColumns(map[string]any{
		"name_folded":     "",
		"category_folded": "",
	}).Error)

	require.NoError(t, Migrate(ctx, store))

	var stored models.Sweet
	require.NoError(t, store.First(&stored, sweet.ID).Error)
	assert.Equal(t, "éclair", stored.NameFolded)
	assert.Equal(t, "pâtisserie", stored.CategoryFolded)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "oracle", "dsn")
	assert.Error(t, err)
}
