package models

import "time"

// OrderLine is one aggregated (item, quantity) pair within an order.
// MenuItem is a value copy taken when the line was added: deleting the item
// from the catalog later does not change an order that already holds it.
type OrderLine struct {
	MenuItem MenuItem `json:"menu_item"`
	Quantity int      `json:"quantity"`
}

// Order is the mutable tab of one table, active until closed.
type Order struct {
	ID          int         `json:"id"`
	TableNumber int         `json:"table_number"`
	Items       []OrderLine `json:"items"`
	CreatedAt   time.Time   `json:"timestamp"`
	IsActive    bool        `json:"is_active"`
}

// AddLine merges the item into an existing line with the same menu-item id,
// or appends a new line. Lines are keyed by menu-item identity, so adding the
// same item twice never produces two lines.
func (o *Order) AddLine(item MenuItem, quantity int) {
	for i := range o.Items {
		if o.Items[i].MenuItem.ID == item.ID {
			o.Items[i].Quantity += quantity
			return
		}
	}
	o.Items = append(o.Items, OrderLine{MenuItem: item, Quantity: quantity})
}

// RemoveLine drops the line holding the given menu item. Returns false if no
// line references it.
func (o *Order) RemoveLine(menuItemID int) bool {
	for i := range o.Items {
		if o.Items[i].MenuItem.ID == menuItemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Quantity returns the aggregated quantity for a menu item, 0 when absent.
func (o *Order) Quantity(menuItemID int) int {
	for i := range o.Items {
		if o.Items[i].MenuItem.ID == menuItemID {
			return o.Items[i].Quantity
		}
	}
	return 0
}
