// Package continuity implements the degraded-mode continuity policy.
//
// The controller wraps every user and product store operation. Failures
// coming out of the repositories arrive pre-classified: domain rejections
// (duplicate identity, unknown owner) and unexpected store failures are
// propagated unchanged, while store-unreachable failures are absorbed and
// replaced with a synthesized, non-persistent success so clients keep
// getting answers while the database is down.
//
// The synthesized results are fabrications. Writes accepted in degraded
// mode are lost, and the login path returns an identity built from the
// caller-supplied username WITHOUT verifying the password. That is an
// intentional availability-over-durability (and, for login, over-security)
// trade-off carried over from the system this one replaces; set
// continuity.enabled=false to propagate store failures instead.
//
// Degradation is decided per call. Nothing is cached or retried: the store
// may recover between calls, and every call attempts it again.
package continuity

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/pkg/metrics"
	"github.com/dmarrez/inventario/internal/repository"
)

// Degradation event names, logged under the "event" field.
const (
	EventDegradedWrite = "DEGRADED_WRITE"
	EventDegradedAuth  = "DEGRADED_AUTH"
	EventDegradedRead  = "DEGRADED_READ"
)

// Values used to synthesize a login identity while the store is
// unreachable, matching the system this one replaces.
const (
	synthLoginUserID = 1
	synthLoginEmail  = "test@test.com"
)

// Controller applies the continuity policy around the stores.
type Controller struct {
	users    repository.UserRepository
	products repository.ProductRepository
	enabled  bool
	logger   zerolog.Logger
	metrics  *metrics.Metrics

	// newID generates ids for synthesized writes. Overridable in tests.
	newID func() int64
}

// Config contains the dependencies for a Controller.
type Config struct {
	Users    repository.UserRepository
	Products repository.ProductRepository

	// Enabled turns synthesis on. When false the controller is a plain
	// pass-through and store failures reach the caller.
	Enabled bool

	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// New creates a Controller.
func New(cfg Config) *Controller {
	return &Controller{
		users:    cfg.Users,
		products: cfg.Products,
		enabled:  cfg.Enabled,
		logger:   cfg.Logger.With().Str("component", "continuity").Logger(),
		metrics:  cfg.Metrics,
		newID:    func() int64 { return rand.Int64N(1_000_000) + 1 },
	}
}

// CreateUser stores a new user. If the store is unreachable the user is
// given a fresh non-persistent id and reported as created. The returned
// flag is true when the result was synthesized.
func (c *Controller) CreateUser(ctx context.Context, user *domain.User) (bool, error) {
	err := c.users.Create(ctx, user)
	if err == nil {
		return false, nil
	}
	if !c.shouldSynthesize(err) {
		return false, err
	}

	user.ID = c.newID()
	c.degraded(EventDegradedWrite, "write", err).
		Str("username", user.Username).
		Int64("synthesized_id", user.ID).
		Msg("user store unreachable, synthesized registration")

	return true, nil
}

// FindUserForLogin looks up the identity for a login attempt. If the store
// is unreachable it returns a synthesized identity built from the supplied
// username; the returned flag is true in that case and the caller must skip
// password verification, because there is no stored hash to verify against.
func (c *Controller) FindUserForLogin(ctx context.Context, username string) (*domain.User, bool, error) {
	user, err := c.users.GetByUsername(ctx, username)
	if err == nil {
		return user, false, nil
	}
	if !c.shouldSynthesize(err) {
		return nil, false, err
	}

	c.degraded(EventDegradedAuth, "auth", err).
		Str("username", username).
		Msg("user store unreachable, synthesized login identity without password verification")

	return &domain.User{
		ID:       synthLoginUserID,
		Username: username,
		Email:    synthLoginEmail,
	}, true, nil
}

// CreateProduct stores a new product. If the store is unreachable the
// product is given a fresh non-persistent id and reported as created.
func (c *Controller) CreateProduct(ctx context.Context, product *domain.Product) (bool, error) {
	err := c.products.Create(ctx, product)
	if err == nil {
		return false, nil
	}
	if !c.shouldSynthesize(err) {
		return false, err
	}

	product.ID = c.newID()
	c.degraded(EventDegradedWrite, "write", err).
		Int64("owner_id", product.OwnerID).
		Int64("synthesized_id", product.ID).
		Msg("product store unreachable, synthesized product creation")

	return true, nil
}

// ListProducts returns the owner's products. If the store is unreachable
// it returns an empty, non-nil slice.
func (c *Controller) ListProducts(ctx context.Context, ownerID int64) ([]*domain.Product, bool, error) {
	products, err := c.products.ListByOwner(ctx, ownerID)
	if err == nil {
		return products, false, nil
	}
	if !c.shouldSynthesize(err) {
		return nil, false, err
	}

	c.degraded(EventDegradedRead, "read", err).
		Int64("owner_id", ownerID).
		Msg("product store unreachable, returning empty listing")

	return []*domain.Product{}, true, nil
}

// shouldSynthesize reports whether err is a failure the continuity policy
// absorbs. Domain rejections and unexpected store failures never qualify.
func (c *Controller) shouldSynthesize(err error) bool {
	return c.enabled && repository.IsUnreachable(err)
}

// degraded starts a warn-level log event for a synthesized response and
// records it in the metrics.
func (c *Controller) degraded(event, mode string, cause error) *zerolog.Event {
	c.metrics.RecordDegraded(mode)
	return c.logger.Warn().Str("event", event).AnErr("cause", cause)
}
