package service

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/admin"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/ai"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/favorites"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/metrics"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/persistence"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/view"
)

var (
	ErrProductNotFound = catalog.ErrProductNotFound
	ErrLineNotFound    = errors.New("product is not in the cart")
	ErrValidation      = errors.New("validation failed")
	ErrIdentifyFailed  = errors.New("could not analyze the image, please try again")
	ErrEmptyMessage    = errors.New("message is empty")
)

// Collections that change independently
const (
	CollectionCatalog   = "catalog"
	CollectionCart      = "cart"
	CollectionFavorites = "favorites"
	CollectionAuth      = "auth"
	CollectionView      = "view"
)

// Change is published on the event bus after a collection was mutated
type Change struct {
	Collection string
}

// PromoValidator checks promo codes at checkout
type PromoValidator interface {
	IsValid(ctx context.Context, code string) bool
}

// Deps are the collaborators of a Storefront
type Deps struct {
	Sync    *persistence.Synchronizer
	Gate    *admin.Gate
	Gateway ai.Gateway
	Promo   PromoValidator
	Logger  *slog.Logger
	// NewID generates product and order ids; defaults to random UUIDs
	NewID func() string
	Now   func() time.Time
}

// Storefront owns every piece of shop state. All mutations run under one
// mutex, are written through to the store before the lock is released, and
// are announced on the event bus afterwards.
type Storefront struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	cart      *cart.Cart
	favorites *favorites.Set
	view      view.State
	chat      []models.ChatMessage

	gate     *admin.Gate
	sync     *persistence.Synchronizer
	gateway  ai.Gateway
	promo    PromoValidator
	autofill ai.Tracker
	bus      EventBus.Bus
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// NewStorefront rehydrates state from the store once and returns the controller
func NewStorefront(ctx context.Context, deps Deps) *Storefront {
	if deps.Gateway == nil {
		deps.Gateway = ai.Disabled{}
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	snap := deps.Sync.Load(ctx)
	deps.Gate.Restore(snap.Authenticated)

	deps.Logger.Info("storefront state loaded",
		"products", len(snap.Catalog),
		"cart_lines", len(snap.Cart),
		"favorites", len(snap.Favorites),
		"admin_authenticated", snap.Authenticated,
	)

	return &Storefront{
		catalog:   catalog.New(snap.Catalog),
		cart:      cart.New(snap.Cart),
		favorites: favorites.New(snap.Favorites),
		view:      view.NewState(),
		gate:      deps.Gate,
		sync:      deps.Sync,
		gateway:   deps.Gateway,
		promo:     deps.Promo,
		bus:       EventBus.New(),
		logger:    deps.Logger,
		newID:     deps.NewID,
		now:       deps.Now,
	}
}

// Subscribe registers fn for changes of collection
func (s *Storefront) Subscribe(collection string, fn func(Change)) error {
	return s.bus.Subscribe(topic(collection), fn)
}

// Unsubscribe removes a handler registered with Subscribe
func (s *Storefront) Unsubscribe(collection string, fn func(Change)) error {
	return s.bus.Unsubscribe(topic(collection), fn)
}

func topic(collection string) string {
	return collection + ".changed"
}

// persistTimeout bounds one write-through
const persistTimeout = 5 * time.Second

// mutate runs fn under the state lock, writes through every collection fn
// reports as changed, then publishes the changes once the lock is released.
// The write-through outlives the caller's cancellation: once memory has
// changed the store must follow.
func (s *Storefront) mutate(ctx context.Context, fn func() ([]string, error)) error {
	s.mu.Lock()
	changed, err := fn()
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	for _, c := range changed {
		metrics.RecordMutation(c)
		if perr := s.persistLocked(persistCtx, c); perr != nil {
			// memory stays authoritative; the next write of c retries
			metrics.RecordPersistFailure(c)
			s.logger.Error("failed to persist state", "collection", c, "error", perr)
		}
	}
	s.mu.Unlock()

	for _, c := range changed {
		s.bus.Publish(topic(c), Change{Collection: c})
	}
	return err
}

func (s *Storefront) persistLocked(ctx context.Context, collection string) error {
	switch collection {
	case CollectionCatalog:
		return s.sync.SaveCatalog(ctx, s.catalog.All())
	case CollectionCart:
		return s.sync.SaveCart(ctx, s.cart.Lines())
	case CollectionFavorites:
		return s.sync.SaveFavorites(ctx, s.favorites.IDs())
	case CollectionAuth:
		return s.sync.SaveAuth(ctx, s.gate.Authenticated())
	default:
		// view state is not persisted
		return nil
	}
}

// Products returns the whole catalog, newest first
func (s *Storefront) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.All()
}

// Product returns one catalog entry
func (s *Storefront) Product(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

// Market returns the products listed for sale
func (s *Storefront) Market() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collect(s.catalog.ForSale())
}

// FavoriteProducts returns catalog entries the visitor has starred
func (s *Storefront) FavoriteProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collect(s.catalog.Filter(func(p models.Product) bool {
		return s.favorites.Contains(p.ID)
	}))
}

// ToggleFavorite flips membership and returns whether productID is now a favorite
func (s *Storefront) ToggleFavorite(ctx context.Context, productID string) bool {
	var now bool
	_ = s.mutate(ctx, func() ([]string, error) {
		now = s.favorites.Toggle(productID)
		return []string{CollectionFavorites}, nil
	})
	return now
}

// IsFavorite reports whether productID is starred
func (s *Storefront) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(productID)
}

// FavoriteIDs returns the starred ids
func (s *Storefront) FavoriteIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.IDs()
}

// RemoveProduct deletes a product from the catalog. Cart lines referring to
// it are kept; a details screen showing it falls back to home.
func (s *Storefront) RemoveProduct(ctx context.Context, productID string) error {
	return s.mutate(ctx, func() ([]string, error) {
		if !s.catalog.Remove(productID) {
			return nil, ErrProductNotFound
		}
		changed := []string{CollectionCatalog}
		if s.view.Selected == productID {
			s.view.Forget(productID)
			changed = append(changed, CollectionView)
		}
		return changed, nil
	})
}

// View returns the current screen state
func (s *Storefront) View() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate switches to the named screen
func (s *Storefront) Navigate(ctx context.Context, to view.Name) view.State {
	var state view.State
	_ = s.mutate(ctx, func() ([]string, error) {
		s.view.Navigate(to)
		state = s.view
		return []string{CollectionView}, nil
	})
	return state
}

// Select opens the details screen for productID
func (s *Storefront) Select(ctx context.Context, productID string) (view.State, error) {
	var state view.State
	err := s.mutate(ctx, func() ([]string, error) {
		p, err := s.catalog.Get(productID)
		if err != nil {
			return nil, err
		}
		s.view.Select(p.ID, p.IsForSale)
		state = s.view
		return []string{CollectionView}, nil
	})
	return state, err
}

// Back leaves the details screen
func (s *Storefront) Back(ctx context.Context) view.State {
	var state view.State
	_ = s.mutate(ctx, func() ([]string, error) {
		s.view.Back()
		state = s.view
		return []string{CollectionView}, nil
	})
	return state
}

// Login checks the owner password; a match is persisted
func (s *Storefront) Login(ctx context.Context, password string) bool {
	var ok bool
	_ = s.mutate(ctx, func() ([]string, error) {
		ok = s.gate.Login(password)
		if !ok {
			return nil, nil
		}
		return []string{CollectionAuth}, nil
	})
	if !ok {
		s.logger.Warn("admin login rejected")
	}
	return ok
}

// Logout drops the owner session and returns to the home screen
func (s *Storefront) Logout(ctx context.Context) {
	_ = s.mutate(ctx, func() ([]string, error) {
		s.gate.Logout()
		s.view.Navigate(view.Home)
		return []string{CollectionAuth, CollectionView}, nil
	})
}

// AdminStatus returns the gate flags
func (s *Storefront) AdminStatus() admin.Status {
	return s.gate.Status()
}

// Authenticated reports whether the owner is logged in
func (s *Storefront) Authenticated() bool {
	return s.gate.Authenticated()
}

func collect(seq iter.Seq[models.Product]) []models.Product {
	out := slices.Collect(seq)
	if out == nil {
		out = []models.Product{}
	}
	return out
}
