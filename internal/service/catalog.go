package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/sweet_shop/internal/events"
	"github.com/Skotchmaster/sweet_shop/internal/logging"
	"github.com/Skotchmaster/sweet_shop/internal/metrics"
	"github.com/Skotchmaster/sweet_shop/internal/models"
	"github.com/Skotchmaster/sweet_shop/internal/repo"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Now    func() time.Time
}

func NewCatalogService(r *repo.GormRepo, pub events.Publisher) *CatalogService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CatalogService{Repo: r, Events: pub, Now: time.Now}
}

func (s *CatalogService) publish(ctx context.Context, typ string, sweet *models.Sweet, delta int) {
	event := events.Event{
		Type:       typ,
		SweetID:    sweet.ID,
		Name:       sweet.Name,
		Quantity:   sweet.Quantity,
		Delta:      delta,
		OccurredAt: s.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		metrics.EventPublishErrorsTotal.Inc()
		logging.FromContext(ctx).Error("event_publish_error", "type", typ, "sweet_id", sweet.ID, "error", err)
	}
}

func (s *CatalogService) CreateSweet(ctx context.Context, req transport.CreateSweetRequest) (*models.Sweet, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)

	verr := &ValidationError{}
	if name == "" {
		verr.add("name", "Name is required")
	}
	if category == "" {
		verr.add("category", "Category is required")
	}
	if req.Price == nil {
		verr.add("price", "Price must be a positive number")
	} else if msg := checkPrice(*req.Price); msg != "" {
		verr.add("price", msg)
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		verr.add("quantity", "Quantity must be a non-negative integer")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	sweet := &models.Sweet{
		Name:        name,
		Category:    category,
		Price:       *req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Quantity != nil {
		sweet.Quantity = *req.Quantity
	}

	created, err := s.Repo.CreateSweet(ctx, sweet)
	if err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	s.publish(ctx, events.SweetCreated, created, 0)
	return created, nil
}

func (s *CatalogService) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	items, err := s.Repo.ListSweets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}
	return items, nil
}

func (s *CatalogService) SearchSweets(ctx context.Context, f transport.SearchFilter) ([]models.Sweet, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)

	items, err := s.Repo.SearchSweets(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search sweets: %w", err)
	}
	return items, nil
}

// checkPrice rejects prices the decimal(10,2) column would round or overflow.
func checkPrice(p float64) string {
	switch {
	case p < 0 || math.IsNaN(p):
		return "Price must be a positive number"
	case p > models.MaxPrice:
		return fmt.Sprintf("Price must not exceed %.2f", models.MaxPrice)
	}
	digits := strconv.FormatFloat(p, 'f', -1, 64)
	if dot := strings.IndexByte(digits, '.'); dot >= 0 && len(digits)-dot-1 > 2 {
		return "Price must have at most two decimal places"
	}
	return ""
}

func validateUpdate(req *transport.UpdateSweetRequest) error {
	verr := &ValidationError{}

	if req.Name.Set {
		req.Name.Value = strings.TrimSpace(req.Name.Value)
		if req.Name.Null || req.Name.Value == "" {
			verr.add("name", "Name cannot be empty")
		}
	}
	if req.Category.Set {
		req.Category.Value = strings.TrimSpace(req.Category.Value)
		if req.Category.Null || req.Category.Value == "" {
			verr.add("category", "Category cannot be empty")
		}
	}
	if req.Price.Set {
		if req.Price.Null {
			verr.add("price", "Price must be a positive number")
		} else if msg := checkPrice(req.Price.Value); msg != "" {
			verr.add("price", msg)
		}
	}
	if req.Quantity.Set && (req.Quantity.Null || req.Quantity.Value < 0) {
		verr.add("quantity", "Quantity must be a non-negative integer")
	}

	return verr.orNil()
}

func (s *CatalogService) UpdateSweet(ctx context.Context, id uint, req transport.UpdateSweetRequest) (*models.Sweet, error) {
	if err := validateUpdate(&req); err != nil {
		return nil, err
	}

	sweet, err := s.Repo.UpdateSweet(ctx, id, req)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	s.publish(ctx, events.SweetUpdated, sweet, 0)
	return sweet, nil
}

func (s *CatalogService) DeleteSweet(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteSweet(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete sweet: %w", err)
	}

	s.publish(ctx, events.SweetDeleted, &models.Sweet{ID: id}, 0)
	return nil
}

func (s *CatalogService) Purchase(ctx context.Context, id uint, quantity int) (*models.Sweet, error) {
	if quantity <= 0 {
		metrics.StockRejectionsTotal.WithLabelValues("purchase", "invalid_quantity").Inc()
		return nil, invalid("quantity", "Purchase quantity must be greater than 0")
	}

	sweet, err := s.Repo.DecrementStock(ctx, id, quantity)
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			metrics.StockRejectionsTotal.WithLabelValues("purchase", "not_found").Inc()
			return nil, ErrNotFound
		case errors.Is(err, repo.ErrInsufficientStock):
			metrics.StockRejectionsTotal.WithLabelValues("purchase", "insufficient_stock").Inc()
			return nil, ErrInsufficientStock
		default:
			return nil, fmt.Errorf("purchase sweet: %w", err)
		}
	}

	metrics.UnitsPurchasedTotal.Add(float64(quantity))
	s.publish(ctx, events.SweetPurchased, sweet, -quantity)
	return sweet, nil
}

func (s *CatalogService) Restock(ctx context.Context, id uint, quantity int) (*models.Sweet, error) {
	if quantity <= 0 {
		metrics.StockRejectionsTotal.WithLabelValues("restock", "invalid_quantity").Inc()
		return nil, invalid("quantity", "Restock quantity must be greater than 0")
	}

	sweet, err := s.Repo.IncrementStock(ctx, id, quantity)
	if err != nil {
		if repo.IsNotFound(err) {
			metrics.StockRejectionsTotal.WithLabelValues("restock", "not_found").Inc()
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("restock sweet: %w", err)
	}

	metrics.UnitsRestockedTotal.Add(float64(quantity))
	s.publish(ctx, events.SweetRestocked, sweet, quantity)
	return sweet, nil
}
