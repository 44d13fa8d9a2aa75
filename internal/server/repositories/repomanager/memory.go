package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/codereviewer/internal/dbx"
	"github.com/dmitrijs2005/codereviewer/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every caller the same in-process store.
// The DBTX argument is ignored.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

// UserStore exposes the concrete store for callers that need its extras.
func (m *InMemoryRepositoryManager) UserStore() *users.MemoryRepository {
	return m.users
}
