package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sweet_shop/internal/events"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

func ptr[T any](v T) *T { return &v }

func gummyBears() transport.CreateSweetRequest {
	return transport.CreateSweetRequest{
		Name:     "Gummy Bears",
		Category: "Gummies",
		Price:    ptr(1.99),
		Quantity: ptr(10),
	}
}

func TestCreateSweet_Validation(t *testing.T) {
	t.Parallel()
	svc, rec := newCatalogService(t)

	tests := []struct {
		name   string
		req    transport.CreateSweetRequest
		fields []string
	}{
		{name: "empty", req: transport.CreateSweetRequest{}, fields: []string{"name", "category", "price"}},
		{name: "blank name", req: transport.CreateSweetRequest{Name: "  ", Category: "A", Price: ptr(1.0)}, fields: []string{"name"}},
		{name: "negative price", req: transport.CreateSweetRequest{Name: "A", Category: "A", Price: ptr(-1.0)}, fields: []string{"price"}},
		{name: "negative quantity", req: transport.CreateSweetRequest{Name: "A", Category: "A", Price: ptr(1.0), Quantity: ptr(-2)}, fields: []string{"quantity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSweet(context.Background(), tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}

	assert.Empty(t, rec.types())
}

func TestCreateSweet_DefaultsQuantityToZero(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)

	s, err := svc.CreateSweet(context.Background(), transport.CreateSweetRequest{Name: "Cotton Candy", Category: "Cotton Candy", Price: ptr(1.49)})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)
}

func TestCreateThenSearchRoundTrip(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	req := gummyBears()
	req.Description = ptr("Colorful and fruity")
	req.ImageURL = ptr("https://example.com/bears.png")

	created, err := svc.CreateSweet(ctx, req)
	require.NoError(t, err)

	found, err := svc.SearchSweets(ctx, transport.SearchFilter{Name: created.Name})
	require.NoError(t, err)
	require.Len(t, found, 1)

	got := found[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Category, got.Category)
	assert.Equal(t, created.Price, got.Price)
	assert.Equal(t, created.Quantity, got.Quantity)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.ImageURL, got.ImageURL)
}

func TestSearchSweets_CategoryFilter(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateSweet(ctx, transport.CreateSweetRequest{Name: "Truffle", Category: "Chocolate", Price: ptr(4.99), Quantity: ptr(5)})
	require.NoError(t, err)
	bears, err := svc.CreateSweet(ctx, gummyBears())
	require.NoError(t, err)

	found, err := svc.SearchSweets(ctx, transport.SearchFilter{Category: " Gummies "})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bears.ID, found[0].ID)
}

func TestPurchaseScenario(t *testing.T) {
	t.Parallel()
	svc, rec := newCatalogService(t)
	ctx := context.Background()

	bears, err := svc.CreateSweet(ctx, gummyBears())
	require.NoError(t, err)

	after, err := svc.Purchase(ctx, bears.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Quantity)

	_, err = svc.Purchase(ctx, bears.ID, 20)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	items, err := svc.ListSweets(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	assert.Equal(t, []string{events.SweetCreated, events.SweetPurchased}, rec.types())
	assert.Equal(t, -3, rec.events[1].Delta)
}

func TestPurchase_Errors(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Purchase(ctx, 42, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRestock(t *testing.T) {
	t.Parallel()
	svc, rec := newCatalogService(t)
	ctx := context.Background()

	bears, err := svc.CreateSweet(ctx, gummyBears())
	require.NoError(t, err)

	after, err := svc.Restock(ctx, bears.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 25, after.Quantity)

	_, err = svc.Restock(ctx, bears.ID, -1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Restock(ctx, 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{events.SweetCreated, events.SweetRestocked}, rec.types())
}

func TestUpdateSweet(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	bears, err := svc.CreateSweet(ctx, gummyBears())
	require.NoError(t, err)

	updated, err := svc.UpdateSweet(ctx, bears.ID, transport.UpdateSweetRequest{
		Name:     transport.Some(" Sour Bears "),
		Quantity: transport.Some(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sour Bears", updated.Name)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, "Gummies", updated.Category)

	_, err = svc.UpdateSweet(ctx, bears.ID, transport.UpdateSweetRequest{Price: transport.Null[float64]()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateSweet(ctx, bears.ID, transport.UpdateSweetRequest{Name: transport.Some("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateSweet(ctx, 999, transport.UpdateSweetRequest{Name: transport.Some("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSweet(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	bears, err := svc.CreateSweet(ctx, gummyBears())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSweet(ctx, bears.ID))
	assert.ErrorIs(t, svc.DeleteSweet(ctx, bears.ID), ErrNotFound)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()
	svc, rec := newCatalogService(t)
	rec.err = errBroker

	_, err := svc.CreateSweet(context.Background(), gummyBears())
	require.NoError(t, err)
	assert.Equal(t, []string{events.SweetCreated}, rec.types())
}

func TestCreateSweet_PriceMustFitColumn(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		price float64
		msg   string
	}{
		{name: "three decimals", price: 1.999, msg: "Price must have at most two decimal places"},
		{name: "too large", price: 100000000, msg: "Price must not exceed 99999999.99"},
		{name: "negative", price: -0.01, msg: "Price must be a positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := gummyBears()
			req.Price = ptr(tt.price)

			_, err := svc.CreateSweet(ctx, req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, "price", verr.Fields[0].Field)
			assert.Equal(t, tt.msg, verr.Fields[0].Message)
		})
	}

	req := gummyBears()
	req.Price = ptr(99999999.99)
	created, err := svc.CreateSweet(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 99999999.99, created.Price)
}

func TestUpdateSweet_PriceMustFitColumn(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	bears, err := svc.CreateSweet(ctx, gummyBears())
	require.NoError(t, err)

	_, err = svc.UpdateSweet(ctx, bears.ID, transport.UpdateSweetRequest{Price: transport.Some(2.005)})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateSweet(ctx, bears.ID, transport.UpdateSweetRequest{Price: transport.Some(2.05)})
	require.NoError(t, err)
	assert.Equal(t, 2.05, updated.Price)
	assert.Equal(t, 10, updated.Quantity)
}

func TestSearchSweets_ExactNonASCIIName(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateSweet(ctx, transport.CreateSweetRequest{Name: "Éclair", Category: "Pâtisserie", Price: ptr(3.5), Quantity: ptr(4)})
	require.NoError(t, err)

	found, err := svc.SearchSweets(ctx, transport.SearchFilter{Name: created.Name})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
	assert.Equal(t, created.Name, found[0].Name)
}
