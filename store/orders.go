package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"waiter-telegram/models"
)

var (
	// ErrInvalidTable is returned for table numbers outside [1, tableCount].
	ErrInvalidTable = errors.New("invalid table number")
	// ErrOrderNotFound is returned when the order id no longer exists.
	ErrOrderNotFound = errors.New("order not found")
)

// Orders is the authoritative list of active orders. At most one active
// order exists per table; a closed order is persisted as inactive and then
// dropped from the live collection, so no order history is kept.
type Orders struct {
	mu         sync.Mutex
	path       string
	tableCount int
	orders     []models.Order
	recovered  bool
}

// NewOrders loads the order collection from path. Only records still marked
// active survive the load; inactive ones are dropped, consistent with close
// discarding history. An unreadable or malformed file degrades to an empty
// collection; load is never fatal.
func NewOrders(path string, tableCount int) *Orders {
	loaded, recovered := readCollection[models.Order](path)
	var active []models.Order
	for _, o := range loaded {
		if o.IsActive {
			active = append(active, o)
		}
	}
	return &Orders{
		path:       path,
		tableCount: tableCount,
		orders:     active,
		recovered:  recovered,
	}
}

// RecoveredFromCorrupt reports whether the load found an unreadable or
// malformed file and degraded to an empty collection.
func (s *Orders) RecoveredFromCorrupt() bool {
	return s.recovered
}

func (s *Orders) TableCount() int {
	return s.tableCount
}

// CreateOrder opens a new active order for the table. If the table already
// has an active order that order is returned instead, so the call is
// idempotent per table.
func (s *Orders) CreateOrder(tableNumber int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tableNumber < 1 || tableNumber > s.tableCount {
		return models.Order{}, fmt.Errorf("%w: %d (tables are 1..%d)", ErrInvalidTable, tableNumber, s.tableCount)
	}

	for i := range s.orders {
		if s.orders[i].TableNumber == tableNumber && s.orders[i].IsActive {
			return cloneOrder(s.orders[i]), nil
		}
	}

	order := models.Order{
		ID:          s.nextID(),
		TableNumber: tableNumber,
		CreatedAt:   time.Now(),
		IsActive:    true,
	}
	s.orders = append(s.orders, order)
	s.persist()
	return cloneOrder(order), nil
}

func (s *Orders) OrderByID(id int) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			return cloneOrder(s.orders[i]), true
		}
	}
	return models.Order{}, false
}

func (s *Orders) ActiveOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for i := range s.orders {
		if s.orders[i].IsActive {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	return out
}

func (s *Orders) ActiveOrderForTable(tableNumber int) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].TableNumber == tableNumber && s.orders[i].IsActive {
			return cloneOrder(s.orders[i]), true
		}
	}
	return models.Order{}, false
}

// AddLine adds quantity of the item to the order, aggregating into an
// existing line for the same menu item. The item is stored as a value copy:
// later catalog edits do not reach into existing orders.
func (s *Orders) AddLine(orderID int, item models.MenuItem, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].AddLine(item, quantity)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
}

// RemoveLine drops the line referencing the menu item from the order.
func (s *Orders) RemoveLine(orderID, menuItemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			if s.orders[i].RemoveLine(menuItemID) {
				s.persist()
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
}

// CloseOrder deactivates the order, persists, and removes it from the live
// collection entirely: afterwards the id resolves to nothing. Returns false
// for an unknown id, so a second close of the same order returns false.
func (s *Orders) CloseOrder(orderID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].IsActive = false
			s.persist()
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Orders) nextID() int {
	max := 0
	for i := range s.orders {
		if s.orders[i].ID > max {
			max = s.orders[i].ID
		}
	}
	return max + 1
}

func (s *Orders) persist() {
	data := s.orders
	if data == nil {
		data = []models.Order{}
	}
	if err := writeCollection(s.path, data); err != nil {
		log.Error().Str("path", s.path).Err(err).Msg("orders save failed")
	}
}

func cloneOrder(o models.Order) models.Order {
	out := o
	out.Items = make([]models.OrderLine, len(o.Items))
	copy(out.Items, o.Items)
	return out
}
