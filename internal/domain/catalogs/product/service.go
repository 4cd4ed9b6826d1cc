package product

import (
	"context"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
)

// CategoryResolver checks that a category reference resolves.
// Implemented by the category repository.
type CategoryResolver interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	categories CategoryResolver
}

// NewService creates a new Product service.
func NewService(repo Repository, categories CategoryResolver, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkCategoryResolves)

	// Deleting a product referenced by historical invoice lines is allowed.
	// Movement reports degrade to a placeholder label for orphaned ids
	// instead of the catalog enforcing a hard constraint.

	return svc
}

// prepareForCreate stamps audit fields and checks references.
func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	if item.CreatedBy == "" {
		item.CreatedBy = appctx.GetUserEmail(ctx)
	}

	if exists, err := s.repo.ExistsByCode(ctx, item.Code); err != nil {
		return err
	} else if exists {
		return apperror.NewDuplicate("product", "code", item.Code)
	}

	return s.checkCategoryResolves(ctx, item)
}

// checkCategoryResolves validates the optional category reference.
func (s *Service) checkCategoryResolves(ctx context.Context, item *Product) error {
	if item.CategoryID == nil || *item.CategoryID == "" {
		return nil
	}

	categoryID, err := id.Parse(*item.CategoryID)
	if err != nil {
		return apperror.NewValidation("invalid category reference").
			WithDetail("field", "categoryId").
			WithDetail("value", *item.CategoryID)
	}

	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("category does not exist").
			WithDetail("field", "categoryId").
			WithDetail("value", *item.CategoryID)
	}

	return nil
}

// ListByCategory retrieves products belonging to a category.
func (s *Service) ListByCategory(ctx context.Context, categoryID string, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.ListByCategory(ctx, categoryID, filter)
}
