// Package bistro bundles the chapter 7 package-organization demo. The
// front of house (Menu, Seat, PlaceOrder) is exported; the kitchen
// (cook, plate) is not, so other packages can order food but never
// reach past the pass.
package bistro

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Dish is one line on the menu.
type Dish struct {
	Name   string
	Course string
	Price  float64
}

// Table is a seated party.
type Table struct {
	Number int
	Seats  int
}

// Order tracks the dishes for one table and the path they take through
// the kitchen. The step log is unexported so callers cannot forge it.
type Order struct {
	Table  Table
	Dishes []Dish
	steps  []string
}

const maxParty = 6

var (
	// ErrPartySize reports a party the tables cannot hold.
	ErrPartySize = errors.New("party size must be between 1 and 6")
	// ErrUnknownDish reports an order for something not on the menu.
	ErrUnknownDish = errors.New("not on the menu")
	// ErrNoDishes reports an order with nothing on it.
	ErrNoDishes = errors.New("order has no dishes")
)

var menu = []Dish{
	{Name: "garlic soup", Course: "starter", Price: 7.50},
	{Name: "sourdough loaf", Course: "starter", Price: 4.00},
	{Name: "mushroom risotto", Course: "main", Price: 14.00},
	{Name: "herb gnocchi", Course: "main", Price: 12.50},
	{Name: "lemon tart", Course: "dessert", Price: 6.00},
}

var (
	tableMu   sync.Mutex
	nextTable int
)

// Menu returns the dishes on offer. Callers get a copy, the menu
// itself stays private.
func Menu() []Dish {
	dishes := make([]Dish, len(menu))
	copy(dishes, menu)
	return dishes
}

// Seat assigns the party the next free table.
func Seat(guests int) (Table, error) {
	if guests < 1 || guests > maxParty {
		return Table{}, fmt.Errorf("%w, got %d", ErrPartySize, guests)
	}

	tableMu.Lock()
	defer tableMu.Unlock()
	nextTable++
	return Table{Number: nextTable, Seats: guests}, nil
}

// PlaceOrder takes an order for the table and walks it through the
// kitchen. The returned order has already been cooked, plated and
// served, with every step on record.
func PlaceOrder(table Table, names ...string) (*Order, error) {
	if len(names) == 0 {
		return nil, ErrNoDishes
	}

	order := &Order{Table: table}
	for _, name := range names {
		dish, ok := findDish(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownDish)
		}
		order.Dishes = append(order.Dishes, dish)
	}

	order.note("order taken for table %d: %s", table.Number, strings.Join(names, ", "))
	cook(order)
	plate(order)
	order.note("served to table %d, total %.2f", table.Number, order.Total())
	return order, nil
}

// Path returns the steps the order went through, oldest first.
func (o *Order) Path() []string {
	steps := make([]string, len(o.steps))
	copy(steps, o.steps)
	return steps
}

// Total sums the order's dish prices.
func (o *Order) Total() float64 {
	total := 0.0
	for _, dish := range o.Dishes {
		total += dish.Price
	}
	return total
}

func (o *Order) note(format string, args ...any) {
	o.steps = append(o.steps, fmt.Sprintf(format, args...))
}

func findDish(name string) (Dish, bool) {
	for _, dish := range menu {
		if dish.Name == name {
			return dish, true
		}
	}
	return Dish{}, false
}

// cook fires each dish. Only this package can call it.
func cook(o *Order) {
	for _, dish := range o.Dishes {
		o.note("cook: %s on the fire", dish.Name)
	}
}

// plate readies the cooked dishes for the pass. Only this package can
// call it.
func plate(o *Order) {
	o.note("plate: %d dishes up for table %d", len(o.Dishes), o.Table.Number)
}

// resetTables rewinds the table counter, for tests.
func resetTables() {
	tableMu.Lock()
	defer tableMu.Unlock()
	nextTable = 0
}
