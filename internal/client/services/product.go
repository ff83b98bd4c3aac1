package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
)

const DefaultPageSize = 20

// CatalogClient is the part of the API client the catalogue needs.
type CatalogClient interface {
	ListProducts(ctx context.Context, q models.ProductQuery) (models.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// ProductService holds the last fetched product listing and the product
// currently being viewed.
type ProductService struct {
	client CatalogClient
	logger logging.Logger

	mu       sync.RWMutex
	products []models.Product
	current  *models.Product
	page     int
	pageSize int
	total    int
	loading  bool
	errMsg   string
}

func NewProductService(c CatalogClient, logger logging.Logger) *ProductService {
	return &ProductService{
		client:   c,
		logger:   logger.With("module", "catalog"),
		products: []models.Product{},
		page:     1,
		pageSize: DefaultPageSize,
	}
}

func (s *ProductService) start() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *ProductService) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// FetchProducts loads one page of the catalogue. Page defaults to 1 and
// PageSize to DefaultPageSize. On failure the listing is emptied.
func (s *ProductService) FetchProducts(ctx context.Context, q models.ProductQuery) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	s.start()
	defer s.finish()

	page, err := s.client.ListProducts(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn(ctx, "cannot load products", "error", err)
		s.errMsg = ErrorMessage(err, MsgLoadProductsFailed)
		s.products = []models.Product{}
		s.total = 0
		return
	}

	s.products = page.Items
	if s.products == nil {
		s.products = []models.Product{}
	}
	s.page = q.Page
	if page.Page > 0 {
		s.page = page.Page
	}
	s.pageSize = q.PageSize
	if page.PageSize > 0 {
		s.pageSize = page.PageSize
	}
	s.total = page.Total
}

// FetchProduct loads a single product into Current. On failure Current is
// cleared.
func (s *ProductService) FetchProduct(ctx context.Context, id int64) {
	s.start()
	defer s.finish()

	p, err := s.client.GetProduct(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn(ctx, "cannot load product", "product_id", id, "error", err)
		s.errMsg = ErrorMessage(err, MsgLoadProductFailed)
		s.current = nil
		return
	}
	s.current = p
}

// Products returns a copy of the current listing.
func (s *ProductService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

func (s *ProductService) Current() *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

func (s *ProductService) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func (s *ProductService) PageSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageSize
}

func (s *ProductService) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *ProductService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ProductService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}
