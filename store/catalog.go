package store

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"waiter-telegram/models"
)

// Catalog is the authoritative list of menu items. Every mutation rewrites
// the backing JSON file; mutating calls are serialized by a single mutex.
type Catalog struct {
	mu        sync.Mutex
	path      string
	taxonomy  models.Taxonomy
	items     []models.MenuItem
	recovered bool
}

// NewCatalog loads the catalog from path. An absent file becomes an empty,
// freshly persisted catalog. An unreadable or malformed file degrades to an
// empty catalog; the data loss is observable via RecoveredFromCorrupt. Load
// is never fatal.
func NewCatalog(path string, taxonomy models.Taxonomy) *Catalog {
	items, recovered := readCollection[models.MenuItem](path)
	c := &Catalog{
		path:      path,
		taxonomy:  taxonomy,
		items:     items,
		recovered: recovered,
	}

	// Older files may predate the main_category field; derive it once and
	// re-persist so the file matches the current record shape.
	backfilled := false
	for i := range c.items {
		if c.items[i].MainCategory == "" {
			c.items[i].MainCategory = taxonomy.MainFor(c.items[i].Category)
			backfilled = true
		}
	}
	if backfilled {
		c.persist()
	}
	return c
}

// RecoveredFromCorrupt reports whether the load found an unreadable or
// malformed file and degraded to an empty collection.
func (c *Catalog) RecoveredFromCorrupt() bool {
	return c.recovered
}

func (c *Catalog) MainCategories() []string {
	return c.taxonomy.MainCategories
}

func (c *Catalog) Subcategories(main string) []string {
	return c.taxonomy.SubcategoriesOf(main)
}

// Items returns a copy of the whole catalog in insertion order.
func (c *Catalog) Items() []models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemsByCategory matches the subcategory case-insensitively.
func (c *Catalog) ItemsByCategory(category string) []models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.MenuItem
	for _, item := range c.items {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) ItemByID(id int) (models.MenuItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// AddItem appends a new item with id max(existing)+1, 1 for an empty
// catalog. Deleting items below the maximum never frees their ids; only the
// current maximum's id can be handed out again after its item is deleted.
// An empty mainCategory is derived from the subcategory.
func (c *Catalog) AddItem(name, category, mainCategory string) models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mainCategory == "" {
		mainCategory = c.taxonomy.MainFor(category)
	}
	item := models.MenuItem{
		ID:           c.nextID(),
		Name:         name,
		Category:     category,
		MainCategory: mainCategory,
	}
	c.items = append(c.items, item)
	c.persist()
	return item
}

// DeleteItem removes the item by id and persists. A missing id is a no-op
// returning false.
func (c *Catalog) DeleteItem(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return true
		}
	}
	return false
}

func (c *Catalog) nextID() int {
	max := 0
	for _, item := range c.items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}

// persist rewrites the file. A failed save is logged but the in-memory
// mutation stands: an unacknowledged save is a durability risk, not a
// functional failure.
func (c *Catalog) persist() {
	data := c.items
	if data == nil {
		data = []models.MenuItem{}
	}
	if err := writeCollection(c.path, data); err != nil {
		log.Error().Str("path", c.path).Err(err).Msg("menu save failed")
	}
}
