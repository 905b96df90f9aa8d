package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/sweet_shop/internal/models"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

const newestFirst = "created_at DESC, id DESC"

func (r *GormRepo) GetSweet(ctx context.Context, id uint) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := r.DB.WithContext(ctx).First(&sweet, id).Error; err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *GormRepo) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	items := []models.Sweet{}
	if err := r.DB.WithContext(ctx).Order(newestFirst).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SearchSweets(ctx context.Context, f transport.SearchFilter) ([]models.Sweet, error) {
	q := r.DB.WithContext(ctx).Model(&models.Sweet{})

	if f.Name != "" {
		q = q.Where(`name_folded LIKE ? ESCAPE '\'`, containsPattern(f.Name))
	}
	if f.Category != "" {
		q = q.Where(`category_folded LIKE ? ESCAPE '\'`, containsPattern(f.Category))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	items := []models.Sweet{}
	if err := q.Order(newestFirst).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSweet returns the row as stored, so column rounding is visible to
// the caller exactly as a later read would see it.
func (r *GormRepo) CreateSweet(ctx context.Context, sweet *models.Sweet) (*models.Sweet, error) {
	if err := r.DB.WithContext(ctx).Create(sweet).Error; err != nil {
		return nil, err
	}
	return r.GetSweet(ctx, sweet.ID)
}

// UpdateSweet writes only the fields present in req. Columns the request
// does not name, quantity in particular, are never written back, so a
// concurrent purchase is not undone by a stale read.
func (r *GormRepo) UpdateSweet(ctx context.Context, id uint, req transport.UpdateSweetRequest) (*models.Sweet, error) {
	fields := map[string]any{}
	if req.Name.Set {
		fields["name"] = req.Name.Value
		fields["name_folded"] = models.Fold(req.Name.Value)
	}
	if req.Category.Set {
		fields["category"] = req.Category.Value
		fields["category_folded"] = models.Fold(req.Category.Value)
	}
	if req.Price.Set {
		fields["price"] = req.Price.Value
	}
	if req.Quantity.Set {
		fields["quantity"] = req.Quantity.Value
	}
	if req.Description.Set {
		fields["description"] = req.Description.Ptr()
	}
	if req.ImageURL.Set {
		fields["image_url"] = req.ImageURL.Ptr()
	}

	var sweet models.Sweet
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&models.Sweet{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.First(&sweet, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *GormRepo) DeleteSweet(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Sweet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock removes k units only while at least k are in stock, so
// concurrent purchases can never drive the quantity below zero.
func (r *GormRepo) DecrementStock(ctx context.Context, id uint, k int) (*models.Sweet, error) {
	return r.adjustStock(ctx, id, -k)
}

func (r *GormRepo) IncrementStock(ctx context.Context, id uint, k int) (*models.Sweet, error) {
	return r.adjustStock(ctx, id, k)
}

func (r *GormRepo) adjustStock(ctx context.Context, id uint, delta int) (*models.Sweet, error) {
	var sweet models.Sweet
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Sweet{}).Where("id = ?", id)
		if delta < 0 {
			q = q.Where("quantity >= ?", -delta)
		}

		res := q.Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}

		if err := tx.First(&sweet, id).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *GormRepo) CreateSweets(ctx context.Context, sweets []models.Sweet) error {
	return r.DB.WithContext(ctx).Create(&sweets).Error
}

func containsPattern(s string) string {
	s = models.Fold(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
