package repository

import (
	"context"
	"testing"
	"time"

	"urban-luxury/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandRepository_CreateAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	brands := []*model.Brand{
		{ID: "1", Name: "Older", Logo: "http://localhost/uploads/a.png", Description: "first", CreatedAt: now.Add(-time.Hour)},
		{ID: "2", Name: "Newer", Logo: "http://localhost/uploads/b.png", Description: "second", CreatedAt: now},
	}
	for _, b := range brands {
		require.NoError(t, repo.Create(ctx, b))
	}

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "2", listed[0].ID)
	assert.Equal(t, "1", listed[1].ID)
	assert.Equal(t, "http://localhost/uploads/a.png", listed[1].Logo)
	assert.True(t, now.Equal(listed[0].CreatedAt))
}

func TestBrandRepository_List_Empty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())

	brands, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, brands)
	assert.Empty(t, brands)
}

func TestBrandRepository_Create_Duplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())
	ctx := context.Background()

	brand := &model.Brand{ID: "99", Name: "TestCo", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, brand))

	err := repo.Create(ctx, &model.Brand{ID: "99", Name: "Other", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, model.ErrBrandExists)
}

func TestBrandRepository_GetByIDAndDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Brand{ID: "7", Name: "Seven", CreatedAt: time.Now()}))

	tests := []struct {
		name      string
		id        string
		expectNil bool
	}{
		{name: "Brand exists", id: "7", expectNil: false},
		{name: "Brand does not exist", id: "404", expectNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, err := repo.GetByID(ctx, tt.id)
			require.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, brand)
			} else {
				require.NotNil(t, brand)
				assert.Equal(t, "Seven", brand.Name)
			}
		})
	}

	deleted, err := repo.Delete(ctx, "7")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "7")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBrandRepository_ErrorPaths(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())
	ctx := context.Background()

	// Close the pool to simulate database errors
	pool.Close()

	_, err := repo.List(ctx)
	assert.Error(t, err)

	_, err = repo.GetByID(ctx, "1")
	assert.Error(t, err)

	err = repo.Create(ctx, &model.Brand{ID: "1", Name: "x", CreatedAt: time.Now()})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrBrandExists)
}
