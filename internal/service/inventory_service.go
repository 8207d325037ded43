package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/cache"
	"github.com/dmarrez/inventario/internal/continuity"
	"github.com/dmarrez/inventario/internal/domain"
)

// InventoryService handles product creation and listing.
type InventoryService struct {
	store      *continuity.Controller
	cache      cache.Cache
	listingTTL time.Duration
	logger     zerolog.Logger
}

// NewInventoryService creates a new InventoryService. cache may be nil,
// in which case every listing goes to the store.
func NewInventoryService(store *continuity.Controller, c cache.Cache, listingTTL time.Duration, logger zerolog.Logger) *InventoryService {
	return &InventoryService{
		store:      store,
		cache:      c,
		listingTTL: listingTTL,
		logger:     logger.With().Str("service", "inventory").Logger(),
	}
}

// AddItemInput contains the data needed to add a product.
type AddItemInput struct {
	OwnerID     int64
	Name        string
	Quantity    int
	Description string
}

// AddItemOutput contains the result of adding a product.
type AddItemOutput struct {
	// ProductID is the id of the new product. Non-persistent when Degraded.
	ProductID int64

	// Degraded is true when the store was unreachable and the success
	// was synthesized; the product was not durably recorded.
	Degraded bool
}

// AddItem validates the input and stores a new product for the owner.
func (s *InventoryService) AddItem(ctx context.Context, input AddItemInput) (*AddItemOutput, error) {
	if input.OwnerID <= 0 {
		return nil, &MissingFieldError{Field: "usuario_id"}
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &MissingFieldError{Field: "nombre"}
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product := domain.NewProduct(
		input.OwnerID,
		strings.TrimSpace(input.Name),
		input.Quantity,
		strings.TrimSpace(input.Description),
	)

	degraded, err := s.store.CreateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownOwner) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("owner_id", input.OwnerID).Msg("failed to create product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	// A synthesized write changed nothing, so the cached listing is
	// still accurate and is left alone.
	if !degraded {
		s.invalidateListing(ctx, input.OwnerID)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int64("owner_id", product.OwnerID).
		Bool("degraded", degraded).
		Msg("product created")

	return &AddItemOutput{ProductID: product.ID, Degraded: degraded}, nil
}

// ListItemsOutput contains the result of a listing.
type ListItemsOutput struct {
	// Products is ordered newest first. Never nil.
	Products []*domain.Product

	// Degraded is true when the store was unreachable and an empty
	// listing was synthesized.
	Degraded bool
}

// ListItems returns the owner's products, newest first. An owner with no
// products gets an empty listing, as does an unknown owner. Listings are
// served from the cache when available; a degraded result is never cached.
func (s *InventoryService) ListItems(ctx context.Context, ownerID int64) (*ListItemsOutput, error) {
	if ownerID <= 0 {
		return nil, &MissingFieldError{Field: "usuario_id"}
	}

	if products, ok := s.cachedListing(ctx, ownerID); ok {
		return &ListItemsOutput{Products: products}, nil
	}

	products, degraded, err := s.store.ListProducts(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to list products")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !degraded {
		s.storeListing(ctx, ownerID, products)
	}

	return &ListItemsOutput{Products: products, Degraded: degraded}, nil
}

// cachedListing fetches a cached listing. Cache failures are logged and
// treated as misses; the cache never fails a request.
func (s *InventoryService) cachedListing(ctx context.Context, ownerID int64) ([]*domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := cache.ProductListingKey(ownerID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Debug().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}

	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Debug().Err(err).Str("key", key).Msg("cache delete failed")
		}
		return nil, false
	}
	if products == nil {
		products = []*domain.Product{}
	}

	return products, true
}

// storeListing caches a listing with the configured TTL.
func (s *InventoryService) storeListing(ctx context.Context, ownerID int64, products []*domain.Product) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		s.logger.Debug().Err(err).Int64("owner_id", ownerID).Msg("failed to encode listing for cache")
		return
	}

	key := cache.ProductListingKey(ownerID)
	if err := s.cache.Set(ctx, key, data, s.listingTTL); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// invalidateListing drops the owner's cached listing after a write.
func (s *InventoryService) invalidateListing(ctx context.Context, ownerID int64) {
	if s.cache == nil {
		return
	}

	key := cache.ProductListingKey(ownerID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
