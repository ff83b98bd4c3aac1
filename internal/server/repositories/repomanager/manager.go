// Package repomanager bundles the repositories of the development API server.
package repomanager

import (
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/carts"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/products"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Products() products.Repository
	Carts() carts.Repository
}

type memoryManager struct {
	users    *users.MemoryRepository
	products *products.MemoryRepository
	carts    *carts.MemoryRepository
}

// NewMemoryManager returns in-memory repositories with catalogue as the
// product list. Nothing survives a restart.
func NewMemoryManager(catalogue []models.Product) RepositoryManager {
	return &memoryManager{
		users:    users.NewMemoryRepository(),
		products: products.NewMemoryRepository(catalogue),
		carts:    carts.NewMemoryRepository(),
	}
}

func (m *memoryManager) Users() users.Repository { return m.users }
func (m *memoryManager) Products() products.Repository { return m.products }
func (m *memoryManager) Carts() carts.Repository { return m.carts }
