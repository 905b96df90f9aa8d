package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/sweet_shop/internal/hash"
	"github.com/Skotchmaster/sweet_shop/internal/models"
	"github.com/Skotchmaster/sweet_shop/internal/repo"
)

type SeedAccount struct {
	Email    string
	Password string
	Name     string
	Role     string
}

var SeedAccounts = []SeedAccount{
	{Email: "admin@sweetshop.com", Password: "admin123", Name: "Admin User", Role: models.RoleAdmin},
	{Email: "user@sweetshop.com", Password: "user123", Name: "Regular User", Role: models.RoleUser},
}

func strPtr(s string) *string { return &s }

func SeedSweets() []models.Sweet {
	return []models.Sweet{
		{Name: "Milk Chocolate Bar", Category: "Chocolate", Price: 2.99, Quantity: 100,
			Description: strPtr("Creamy milk chocolate bar made with premium cocoa"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1511381939415-e44015466834?w=400")},
		{Name: "Dark Chocolate Truffle", Category: "Chocolate", Price: 4.99, Quantity: 50,
			Description: strPtr("Rich dark chocolate truffles with a smooth ganache center"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1548848723-fac6d4e22e6e?w=400")},
		{Name: "Gummy Bears", Category: "Gummies", Price: 1.99, Quantity: 200,
			Description: strPtr("Colorful and fruity gummy bears"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1582058091505-f87a2e55a40f?w=400")},
		{Name: "Strawberry Lollipop", Category: "Lollipops", Price: 0.99, Quantity: 150,
			Description: strPtr("Sweet strawberry flavored lollipop"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1623246123320-0d6636755796?w=400")},
		{Name: "Caramel Candy", Category: "Caramel", Price: 3.49, Quantity: 80,
			Description: strPtr("Soft and chewy caramel candies"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1606312619811-5a5b4e49e049?w=400")},
		{Name: "Mint Chocolate", Category: "Chocolate", Price: 3.99, Quantity: 60,
			Description: strPtr("Refreshing mint chocolate bars"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1599599810769-bcde5a160d32?w=400")},
		{Name: "Rainbow Sour Belts", Category: "Sour Candy", Price: 2.49, Quantity: 120,
			Description: strPtr("Tangy and colorful sour candy belts"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1581798459219-c8f1e3b5afdc?w=400")},
		{Name: "Cotton Candy", Category: "Cotton Candy", Price: 1.49, Quantity: 90,
			Description: strPtr("Fluffy and sweet cotton candy"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1624818943134-7b2c0ff7c9b6?w=400")},
		{Name: "Chocolate Fudge", Category: "Fudge", Price: 5.99, Quantity: 40,
			Description: strPtr("Rich and creamy chocolate fudge"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1606890737304-57a1ca8a5b62?w=400")},
		{Name: "Jelly Beans", Category: "Jelly", Price: 2.99, Quantity: 180,
			Description: strPtr("Assorted flavored jelly beans"),
			ImageURL:    strPtr("https://images.unsplash.com/photo-1587241321921-91ded5d51c6e?w=400")},
	}
}

type SeedService struct {
	Repo *repo.GormRepo
}

// Seed inserts the demo accounts and catalog. It reports false without
// touching the store when any user already exists.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	count, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err = s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repo.New(tx)
		for _, acc := range SeedAccounts {
			pwHash, err := hash.HashPassword(acc.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user := models.User{
				Email:        acc.Email,
				PasswordHash: pwHash,
				Name:         acc.Name,
				Role:         acc.Role,
			}
			if err := r.CreateUser(ctx, &user); err != nil {
				return fmt.Errorf("create %s: %w", acc.Email, err)
			}
		}

		if err := r.CreateSweets(ctx, SeedSweets()); err != nil {
			return fmt.Errorf("create sweets: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func SeedCredentials() map[string]string {
	out := make(map[string]string, len(SeedAccounts))
	for _, acc := range SeedAccounts {
		out[acc.Role] = acc.Email + " / " + acc.Password
	}
	return out
}
