package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/codereviewer/internal/common"
	"github.com/dmitrijs2005/codereviewer/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndLookup(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.User{Name: "A", Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &models.User{Name: "B", Email: "b@x.com", PasswordHash: "h2"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	byEmail, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
	assert.Equal(t, "h1", byEmail.PasswordHash)

	byID, err := repo.GetUserByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", byID.Email)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Name: "A2", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryRepository_NotFoundAndDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetUserByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	u, err := repo.Create(ctx, &models.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	repo.Delete(u.ID)
	_, err = repo.GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetUserByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryRepository_ReturnedCopiesAreIsolated(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestMemoryRepository_ConcurrentSameEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Name: fmt.Sprint(i), Email: "same@x.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, common.ErrConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, repo.Count())
}
