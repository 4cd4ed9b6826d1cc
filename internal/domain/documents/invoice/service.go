package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// ProductResolver checks that a product reference resolves at write time.
// Implemented by the product repository.
type ProductResolver interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business operations for one invoice direction.
// Two instances are wired, one over the input tables and one over the
// output tables.
type Service struct {
	direction Direction
	repo      Repository
	products  ProductResolver
	txManager tx.Manager
}

// NewService creates a new invoice service for the given direction.
func NewService(direction Direction, repo Repository, products ProductResolver, txManager tx.Manager) *Service {
	return &Service{
		direction: direction,
		repo:      repo,
		products:  products,
		txManager: txManager,
	}
}

// Direction returns the direction this service serves.
func (s *Service) Direction() Direction {
	return s.direction
}

func (s *Service) entityName() string {
	return string(s.direction) + " invoice"
}

// Create creates a new invoice header (with any initial lines) atomically.
func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	inv.Direction = s.direction

	if err := inv.Validate(ctx); err != nil {
		return err
	}

	for _, line := range inv.Lines {
		if err := s.checkProductResolves(ctx, line.ProductID); err != nil {
			return err
		}
	}

	if inv.Number == "" {
		inv.Number = s.nextNumber(inv.Date)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName(), err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice created",
		"direction", s.direction,
		"id", inv.ID,
		"number", inv.Number)

	return nil
}

// GetByID retrieves an invoice with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines
	inv.Direction = s.direction

	return inv, nil
}

// List retrieves invoice headers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}
	for _, inv := range result.Items {
		inv.Direction = s.direction
	}
	return result, nil
}

// Update modifies the invoice header fields and replaces its lines.
func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	inv.Direction = s.direction

	if err := inv.Validate(ctx); err != nil {
		return err
	}

	for _, line := range inv.Lines {
		if err := s.checkProductResolves(ctx, line.ProductID); err != nil {
			return err
		}
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName(), err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes an invoice header. Deletion is blocked while line
// items exist so a header can never orphan its table part.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	if _, err := s.repo.GetByID(ctx, docID); err != nil {
		return err
	}

	count, err := s.repo.CountLines(ctx, docID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewReferentialIntegrity("invoice has line items").
			WithDetail("invoice_id", docID.String()).
			WithDetail("line_count", count)
	}

	return s.repo.Delete(ctx, docID)
}

// AddLine records a line item on an existing invoice. The derived total and
// the header totals are computed inside the same transaction as the write,
// so a failed insert never leaves totals inconsistent.
func (s *Service) AddLine(ctx context.Context, docID, productID id.ID, quantity, unitPrice int64) (Line, error) {
	if quantity < 0 {
		return Line{}, apperror.NewValidation("quantity must be a non-negative integer").
			WithDetail("field", "quantity")
	}
	if unitPrice < 0 {
		return Line{}, apperror.NewValidation("unit price must be a non-negative integer").
			WithDetail("field", "unitPrice")
	}

	if err := s.checkProductResolves(ctx, productID); err != nil {
		return Line{}, err
	}

	var line Line
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.loadForLineEdit(ctx, docID)
		if err != nil {
			return err
		}

		line = inv.AddLine(productID, quantity, unitPrice)

		return s.saveLineEdit(ctx, inv)
	})
	if err != nil {
		return Line{}, err
	}

	logger.Info(ctx, "invoice line recorded",
		"direction", s.direction,
		"invoice_id", docID,
		"line_id", line.LineID,
		"product_id", productID,
		"quantity", quantity,
		"total_price", line.TotalPrice)

	return line, nil
}

// UpdateLine edits quantity and unit price of a line, recomputing totals.
func (s *Service) UpdateLine(ctx context.Context, lineID id.ID, quantity, unitPrice int64) (Line, error) {
	if quantity < 0 {
		return Line{}, apperror.NewValidation("quantity must be a non-negative integer").
			WithDetail("field", "quantity")
	}
	if unitPrice < 0 {
		return Line{}, apperror.NewValidation("unit price must be a non-negative integer").
			WithDetail("field", "unitPrice")
	}

	var updated Line
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		_, docID, err := s.repo.FindLine(ctx, lineID)
		if err != nil {
			return err
		}

		inv, err := s.loadForLineEdit(ctx, docID)
		if err != nil {
			return err
		}

		found := false
		for i := range inv.Lines {
			if inv.Lines[i].LineID == lineID {
				inv.Lines[i].SetAmounts(quantity, unitPrice)
				updated = inv.Lines[i]
				found = true
				break
			}
		}
		if !found {
			return apperror.NewNotFound("invoice line", lineID.String())
		}

		return s.saveLineEdit(ctx, inv)
	})
	if err != nil {
		return Line{}, err
	}

	return updated, nil
}

// DeleteLine removes a line item. The informational on-hand quantity on
// Product is deliberately left untouched; it is not derived from the ledger.
func (s *Service) DeleteLine(ctx context.Context, lineID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		_, docID, err := s.repo.FindLine(ctx, lineID)
		if err != nil {
			return err
		}

		inv, err := s.loadForLineEdit(ctx, docID)
		if err != nil {
			return err
		}

		if !inv.RemoveLine(lineID) {
			return apperror.NewNotFound("invoice line", lineID.String())
		}

		return s.saveLineEdit(ctx, inv)
	})
}

// loadForLineEdit fetches a header with lines for a line mutation.
func (s *Service) loadForLineEdit(ctx context.Context, docID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewReferentialIntegrity("invoice does not exist").
				WithDetail("invoice_id", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines
	inv.Direction = s.direction
	inv.recalculateTotals()

	return inv, nil
}

// saveLineEdit persists lines and refreshed header totals together.
func (s *Service) saveLineEdit(ctx context.Context, inv *Invoice) error {
	inv.recalculateTotals()

	if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
		return fmt.Errorf("save lines: %w", err)
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return fmt.Errorf("update header totals: %w", err)
	}
	return nil
}

// checkProductResolves enforces referential integrity at write time.
func (s *Service) checkProductResolves(ctx context.Context, productID id.ID) error {
	if id.IsNil(productID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewReferentialIntegrity("product does not exist").
			WithDetail("product_id", productID.String())
	}
	return nil
}

// nextNumber generates a document number. Uniqueness comes from the id
// suffix; the date prefix keeps journals readable.
func (s *Service) nextNumber(date time.Time) string {
	prefix := "IN"
	if s.direction == DirectionOutput {
		prefix = "OUT"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(id.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, date.Format("20060102"), suffix)
}
