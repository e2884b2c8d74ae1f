package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pharmamed/orders/internal/model"
)

type IService interface {
	GetOrders(context.Context, string) ([]model.Order, model.Summary, error)
	GetBuckets(context.Context) ([]string, error)
	CreateOrder(context.Context, model.OrderInput) (model.Order, error)
	SetOrderStatus(context.Context, int, string) (model.Order, error)
	DeleteOrder(context.Context, int, string) error
	ExportOrders(context.Context, string) (*model.Export, error)
}

type Service struct {
	Repository IRepository
	export     *ExportGenerator
	deleteCode string
	logger     *zap.SugaredLogger
}

func NewService(repository IRepository, export *ExportGenerator, deleteCode string, logger *zap.SugaredLogger) *Service {
	return &Service{Repository: repository, export: export, deleteCode: deleteCode, logger: logger}
}

// GetOrders returns the orders for the selection (a business-date
// bucket or SelectionAll), most recent first, with their aggregates.
func (s Service) GetOrders(ctx context.Context, selection string) ([]model.Order, model.Summary, error) {
	orders, err := s.Repository.List(ctx)
	if err != nil {
		return nil, model.Summary{}, err
	}

	filtered := FilterOrders(orders, selection)
	if len(filtered) == 0 {
		return nil, model.Summary{}, ErrNoRecords
	}

	return filtered, Summarize(filtered), nil
}

// GetBuckets returns the distinct business dates available for filtering.
func (s Service) GetBuckets(ctx context.Context) ([]string, error) {
	orders, err := s.Repository.List(ctx)
	if err != nil {
		return nil, err
	}

	return Buckets(orders), nil
}

func (s Service) CreateOrder(ctx context.Context, i model.OrderInput) (model.Order, error) {
	if err := validateInput(i); err != nil {
		return model.Order{}, err
	}

	dateOrdered := i.DateOrdered
	if dateOrdered == "" {
		dateOrdered = time.Now().In(gulfZone).Format(bucketLayout)
	}

	o := model.Order{
		PharmacyName:     i.PharmacyName,
		PharmacyLocation: i.PharmacyLocation,
		ProductName:      i.ProductName,
		Quantity:         i.Quantity,
		UnitPrice:        i.UnitPrice,
		TotalPrice:       i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))),
		Urgency:          i.Urgency,
		DateOrdered:      dateOrdered,
		Status:           model.StatusPending,
	}

	return s.Repository.Create(ctx, o)
}

func (s Service) SetOrderStatus(ctx context.Context, id int, status string) (model.Order, error) {
	if !model.ValidStatus(status) {
		return model.Order{}, ErrUnknownStatus
	}

	return s.Repository.UpdateStatus(ctx, id, status)
}

// DeleteOrder removes an order permanently. The confirmation code is
// checked before the repository is touched; a mismatch aborts with no
// side effect.
func (s Service) DeleteOrder(ctx context.Context, id int, code string) error {
	if code != s.deleteCode {
		return ErrWrongDeleteCode
	}

	if err := s.Repository.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infof("order %d deleted", id)
	return nil
}

func (s Service) ExportOrders(ctx context.Context, selection string) (*model.Export, error) {
	orders, err := s.Repository.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.export.Generate(FilterOrders(orders, selection), selection)
}

func validateInput(i model.OrderInput) error {
	if i.PharmacyName == "" {
		return fmt.Errorf("%w: pharmacy name is required", ErrValidation)
	}
	if i.PharmacyLocation == "" {
		return fmt.Errorf("%w: pharmacy location is required", ErrValidation)
	}
	if i.ProductName == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	if !model.ValidUrgency(i.Urgency) {
		return ErrUnknownUrgency
	}
	if i.DateOrdered != "" {
		if _, err := time.Parse(bucketLayout, i.DateOrdered); err != nil {
			return fmt.Errorf("%w: date ordered must be YYYY-MM-DD", ErrValidation)
		}
	}
	return nil
}
