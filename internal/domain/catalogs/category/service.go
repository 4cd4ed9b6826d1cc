package category

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
)

// ProductCounter reports how many products reference a category.
// Implemented by the product repository; declared here to avoid a
// package cycle between the two catalogs.
type ProductCounter interface {
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// Service provides business logic for the Category catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Category]
	repo     Repository
	products ProductCounter
}

// NewService creates a new Category service.
func NewService(repo Repository, products ProductCounter, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		products:       products,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)
	base.Hooks().OnBeforeDelete(svc.blockWhileReferenced)

	return svc
}

// checkCodeUnique rejects a second category with the same code.
func (s *Service) checkCodeUnique(ctx context.Context, item *Category) error {
	exists, err := s.repo.ExistsByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("category", "code", item.Code)
	}
	return nil
}

// blockWhileReferenced refuses deletion while any product still points at
// the category. Products must be moved or deleted first.
func (s *Service) blockWhileReferenced(ctx context.Context, item *Category) error {
	count, err := s.products.CountByCategory(ctx, item.ID.String())
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewReferentialIntegrity("category is referenced by products").
			WithDetail("category_id", item.ID.String()).
			WithDetail("product_count", count)
	}
	return nil
}
