package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	memorycache "github.com/dmarrez/inventario/internal/cache/memory"
	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/repository"
)

func newInventoryService(products *mockProductRepository) *InventoryService {
	return NewInventoryService(newTestController(newMockUserRepository(), products), nil, 0, zerolog.Nop())
}

func TestInventoryService_AddItem(t *testing.T) {
	tests := []struct {
		name    string
		input   AddItemInput
		wantErr error
	}{
		{
			name: "success",
			input: AddItemInput{
				OwnerID:     1,
				Name:        "Taladro",
				Quantity:    5,
				Description: "Taladro percutor 650W",
			},
		},
		{
			name: "zero quantity is allowed",
			input: AddItemInput{
				OwnerID:  1,
				Name:     "Martillo",
				Quantity: 0,
			},
		},
		{
			name: "missing owner",
			input: AddItemInput{
				Name:     "Taladro",
				Quantity: 5,
			},
			wantErr: ErrMissingField,
		},
		{
			name: "missing name",
			input: AddItemInput{
				OwnerID:  1,
				Name:     "   ",
				Quantity: 5,
			},
			wantErr: ErrMissingField,
		},
		{
			name: "negative quantity",
			input: AddItemInput{
				OwnerID:  1,
				Name:     "Taladro",
				Quantity: -1,
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "unknown owner",
			input: AddItemInput{
				OwnerID:  99,
				Name:     "Taladro",
				Quantity: 5,
			},
			wantErr: domain.ErrUnknownOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := newMockProductRepository()
			products.owners[1] = true
			svc := newInventoryService(products)

			output, err := svc.AddItem(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.ProductID == 0 {
				t.Error("expected a non-zero product id")
			}
			if output.Degraded {
				t.Error("expected a durable write, got degraded")
			}
		})
	}
}

func TestInventoryService_AddItem_Degraded(t *testing.T) {
	products := newMockProductRepository()
	products.createErr = repository.NewUnreachable(errors.New("connection refused"))
	svc := newInventoryService(products)

	output, err := svc.AddItem(context.Background(), AddItemInput{
		OwnerID:  1,
		Name:     "Taladro",
		Quantity: 5,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Degraded {
		t.Error("expected a degraded write")
	}
	if len(products.products) != 0 {
		t.Error("degraded write must not reach the store")
	}
}

func TestInventoryService_ListItems(t *testing.T) {
	t.Run("orders newest first", func(t *testing.T) {
		products := newMockProductRepository()
		products.owners[1] = true
		svc := newInventoryService(products)

		base := time.Now().UTC()
		for i, name := range []string{"A", "B", "C"} {
			p := domain.NewProduct(1, name, i, "")
			p.CreatedAt = base.Add(time.Duration(i) * time.Second)
			if err := products.Create(context.Background(), p); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		output, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := make([]string, 0, len(output.Products))
		for _, p := range output.Products {
			got = append(got, p.Name)
		}
		want := []string{"C", "B", "A"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("empty listing is non-nil", func(t *testing.T) {
		products := newMockProductRepository()
		products.owners[1] = true
		svc := newInventoryService(products)

		output, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Products == nil {
			t.Error("expected a non-nil empty listing")
		}
		if len(output.Products) != 0 {
			t.Errorf("expected no products, got %d", len(output.Products))
		}
	})

	t.Run("unknown owner gets an empty listing", func(t *testing.T) {
		svc := newInventoryService(newMockProductRepository())

		output, err := svc.ListItems(context.Background(), 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Products) != 0 {
			t.Errorf("expected no products, got %d", len(output.Products))
		}
	})

	t.Run("invalid owner id fails validation", func(t *testing.T) {
		svc := newInventoryService(newMockProductRepository())

		_, err := svc.ListItems(context.Background(), 0)
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("unreachable store degrades to an empty listing", func(t *testing.T) {
		products := newMockProductRepository()
		products.listErr = repository.NewUnreachable(errors.New("connection refused"))
		svc := newInventoryService(products)

		output, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Degraded {
			t.Error("expected a degraded listing")
		}
		if output.Products == nil || len(output.Products) != 0 {
			t.Errorf("expected an empty non-nil listing, got %v", output.Products)
		}
	})
}

func TestInventoryService_ListItems_Cache(t *testing.T) {
	newCachedService := func(products *mockProductRepository) *InventoryService {
		c := memorycache.NewCache()
		t.Cleanup(func() { _ = c.Close() })
		return NewInventoryService(newTestController(newMockUserRepository(), products), c, time.Minute, zerolog.Nop())
	}

	t.Run("second read is served from the cache", func(t *testing.T) {
		products := newMockProductRepository()
		products.owners[1] = true
		svc := newCachedService(products)

		if err := products.Create(context.Background(), domain.NewProduct(1, "Taladro", 5, "")); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		first, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(first.Products))
		}

		// A failure injected after the first read proves the second read
		// never touches the store.
		products.listErr = errors.New("store must not be hit")

		second, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Products) != 1 || second.Products[0].Name != "Taladro" {
			t.Errorf("unexpected cached listing: %+v", second.Products)
		}
	})

	t.Run("a durable write invalidates the cached listing", func(t *testing.T) {
		products := newMockProductRepository()
		products.owners[1] = true
		svc := newCachedService(products)

		if _, err := svc.ListItems(context.Background(), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := svc.AddItem(context.Background(), AddItemInput{
			OwnerID:  1,
			Name:     "Martillo",
			Quantity: 2,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Products) != 1 || output.Products[0].Name != "Martillo" {
			t.Errorf("expected the fresh listing after invalidation, got %+v", output.Products)
		}
	})

	t.Run("a degraded write leaves the cached listing alone", func(t *testing.T) {
		products := newMockProductRepository()
		products.owners[1] = true
		svc := newCachedService(products)

		if err := products.Create(context.Background(), domain.NewProduct(1, "Taladro", 5, "")); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if _, err := svc.ListItems(context.Background(), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		products.createErr = repository.NewUnreachable(errors.New("connection refused"))
		products.listErr = errors.New("store must not be hit")

		if _, err := svc.AddItem(context.Background(), AddItemInput{
			OwnerID:  1,
			Name:     "Martillo",
			Quantity: 2,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Products) != 1 || output.Products[0].Name != "Taladro" {
			t.Errorf("expected the cached listing to survive a degraded write, got %+v", output.Products)
		}
	})

	t.Run("a degraded listing is not cached", func(t *testing.T) {
		products := newMockProductRepository()
		products.owners[1] = true
		svc := newCachedService(products)

		products.listErr = repository.NewUnreachable(errors.New("connection refused"))

		output, err := svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Degraded {
			t.Fatal("expected a degraded listing")
		}

		// Store recovers with data; a cached empty listing would hide it.
		products.listErr = nil
		if err := products.Create(context.Background(), domain.NewProduct(1, "Taladro", 5, "")); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		output, err = svc.ListItems(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Degraded || len(output.Products) != 1 {
			t.Errorf("expected the fresh listing after recovery, got %+v", output)
		}
	})
}
