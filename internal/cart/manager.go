// Package cart holds the shopping cart state for one client session.
//
// A Manager owns the ordered line collection. Every mutation writes the
// full collection to storage once before returning; reads never touch
// storage. The manager does not enforce stock ceilings.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"storefront/internal/domain/model"
	"storefront/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey is where the snapshot lives in client storage.
const StorageKey = "cart"

// ErrInvalidProduct is returned by AddItem for products that cannot become a line.
var ErrInvalidProduct = errors.New("cart: invalid product")

type Manager struct {
	mu    sync.Mutex
	store storage.Store
	key   string
	log   *zap.Logger
	lines []model.CartLine
}

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// NewManager rehydrates the cart from store. A missing or malformed
// snapshot yields an empty cart; the failure is only logged.
func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		key:   StorageKey,
		log:   zap.NewNop(),
		lines: []model.CartLine{},
	}
	for _, opt := range opts {
		opt(m)
	}

	lines, err := m.load()
	if err != nil {
		m.log.Warn("discarding stored cart", zap.String("key", m.key), zap.Error(err))
		return m
	}
	m.lines = lines
	return m
}

func (m *Manager) load() ([]model.CartLine, error) {
	raw, ok, err := m.store.Get(m.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.CartLine{}, nil
	}

	var lines []model.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if lines == nil {
		// "null"
		return []model.CartLine{}, nil
	}

	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if l.ProductID == "" {
			return nil, fmt.Errorf("line %d: missing productId", i)
		}
		if l.Quantity < 1 {
			return nil, fmt.Errorf("line %d: quantity %d", i, l.Quantity)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("line %d: duplicate productId %q", i, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return lines, nil
}

// persist must be called with mu held.
func (m *Manager) persist() error {
	b, err := json.Marshal(m.lines)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := m.store.Set(m.key, b); err != nil {
		m.log.Error("cart persist failed", zap.String("key", m.key), zap.Error(err))
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}

// Lines returns a copy of the cart in insertion order.
func (m *Manager) Lines() []model.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.CartLine, len(m.lines))
	for i, l := range m.lines {
		l.Images = append([]string(nil), l.Images...)
		out[i] = l
	}
	return out
}

// Line looks up one line by product id.
func (m *Manager) Line(productID string) (model.CartLine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(productID); i >= 0 {
		l := m.lines[i]
		l.Images = append([]string(nil), l.Images...)
		return l, true
	}
	return model.CartLine{}, false
}

func (m *Manager) index(productID string) int {
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem adds quantity units of p. Quantities below 1 count as 1.
// An existing line is incremented and keeps the snapshot taken when it was first added.
// The in-memory cart is updated even when persisting fails.
func (m *Manager) AddItem(p model.Product, quantity int) error {
	line, err := newLine(p)
	if err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(line.ProductID); i >= 0 {
		m.lines[i].Quantity += quantity
	} else {
		line.Quantity = quantity
		m.lines = append(m.lines, line)
	}
	return m.persist()
}

// RemoveItem deletes the line; unknown ids are a no-op.
func (m *Manager) RemoveItem(productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(productID)
	if i >= 0 {
		m.lines = append(m.lines[:i:i], m.lines[i+1:]...)
	}
	return m.persist()
}

// UpdateQuantity sets the line quantity to max(1, quantity); unknown ids are a no-op.
func (m *Manager) UpdateQuantity(productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(productID); i >= 0 {
		m.lines[i].Quantity = max(1, quantity)
	}
	return m.persist()
}

func (m *Manager) ClearCart() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines = []model.CartLine{}
	return m.persist()
}

// TotalItems is the number of units, not distinct lines.
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, l := range m.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is Σ price×quantity over the snapshotted prices.
func (m *Manager) TotalPrice() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, l := range m.lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

// LineTotal is price×quantity for a single line.
func LineTotal(l model.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// newLine copies the display and pricing fields of p.
func newLine(p model.Product) (model.CartLine, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return model.CartLine{}, fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		return model.CartLine{}, fmt.Errorf("%w: price %v", ErrInvalidProduct, p.Price)
	}

	return model.CartLine{
		ProductID: id,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price,
		Images:    append([]string(nil), p.Images...),
		Stock:     max(0, p.Stock),
		Category:  p.Category,
	}, nil
}
