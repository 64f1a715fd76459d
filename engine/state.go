package engine

// Session state is a tagged union: one struct per dialogue state carrying
// exactly the fields that state needs. The root state is the absence of an
// entry in the session map.
type state interface{ isState() }

// Order-taking flow.

type selectingTable struct{}

type selectingMainCategory struct {
	OrderID int
}

type selectingSubcategory struct {
	OrderID int
	Main    string
}

type selectingItem struct {
	OrderID  int
	Main     string
	Category string
}

type enteringQuantity struct {
	OrderID  int
	ItemID   int
	Main     string
	Category string
	FreeForm bool // user picked "other quantity" and types a number
}

type viewingOrders struct {
	// Labels maps the option strings shown to the user to order ids.
	Labels map[string]int
}

type managingOrder struct {
	OrderID int
}

type confirmingClose struct {
	OrderID int
}

// Menu-editing flow.

type menuRoot struct{}

type editMenuRoot struct{}

type addSelectMain struct{}

type addSelectCategory struct {
	Main string
}

type addEnterName struct {
	Main     string
	Category string
}

type delSelectMain struct{}

type delSelectCategory struct {
	Main string
}

type delSelectItem struct {
	Main     string
	Category string
}

type confirmDelete struct {
	Main     string
	Category string
	ItemID   int
	ItemName string
}

func (selectingTable) isState()        {}
func (selectingMainCategory) isState() {}
func (selectingSubcategory) isState()  {}
func (selectingItem) isState()         {}
func (enteringQuantity) isState()      {}
func (viewingOrders) isState()         {}
func (managingOrder) isState()         {}
func (confirmingClose) isState()       {}
func (menuRoot) isState()              {}
func (editMenuRoot) isState()          {}
func (addSelectMain) isState()         {}
func (addSelectCategory) isState()     {}
func (addEnterName) isState()          {}
func (delSelectMain) isState()         {}
func (delSelectCategory) isState()     {}
func (delSelectItem) isState()         {}
func (confirmDelete) isState()         {}
