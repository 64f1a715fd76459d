package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"waiter-telegram/models"
)

func testTaxonomy() models.Taxonomy {
	return models.Taxonomy{
		MainCategories: []string{"Кухня", "Бар"},
		Subcategories: map[string][]string{
			"Кухня": {"Закуски", "Гарниры", "Горячее", "Десерты", "Салаты"},
			"Бар":   {"Коктейли", "Алкоголь", "Пиво", "Лимонады", "Чай"},
		},
		Fallback: "Кухня",
	}
}

func newTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.json")
	return NewCatalog(path, testTaxonomy()), path
}

func TestCatalogAddItemAssignsMonotonicIDs(t *testing.T) {
	c, _ := newTestCatalog(t)

	first := c.AddItem("Салат Цезарь", "Салаты", "")
	if first.ID != 1 {
		t.Errorf("first item id = %d, want 1", first.ID)
	}
	if first.MainCategory != "Кухня" {
		t.Errorf("main category = %q, want Кухня", first.MainCategory)
	}

	second := c.AddItem("Мохито", "Коктейли", "")
	if second.ID != 2 {
		t.Errorf("second item id = %d, want 2", second.ID)
	}

	// max(existing)+1: deleting an item below the maximum does not shrink
	// the next id.
	if !c.DeleteItem(first.ID) {
		t.Fatal("DeleteItem(1) = false, want true")
	}
	third := c.AddItem("Чай чёрный", "Чай", "")
	if third.ID != 3 {
		t.Errorf("id after deleting a lower id = %d, want 3", third.ID)
	}

	// Deleting the current maximum frees exactly that id: the next item
	// again gets max(existing)+1 over what is left.
	if !c.DeleteItem(third.ID) {
		t.Fatal("DeleteItem(3) = false, want true")
	}
	fourth := c.AddItem("Лимонад", "Лимонады", "")
	if fourth.ID != 3 {
		t.Errorf("id after deleting the maximum = %d, want 3", fourth.ID)
	}
}

func TestCatalogMainCategoryDerivation(t *testing.T) {
	c, _ := newTestCatalog(t)

	tests := []struct {
		name, category, explicit string
		want                     string
	}{
		{"Мохито", "Коктейли", "", "Бар"},
		{"Оливье", "Салаты", "", "Кухня"},
		{"Загадка", "Неизвестная", "", "Кухня"}, // fallback
		{"Ручной", "Салаты", "Бар", "Бар"},      // explicit override wins
	}
	for _, tt := range tests {
		item := c.AddItem(tt.name, tt.category, tt.explicit)
		if item.MainCategory != tt.want {
			t.Errorf("AddItem(%q, %q, %q).MainCategory = %q, want %q",
				tt.name, tt.category, tt.explicit, item.MainCategory, tt.want)
		}
	}
}

func TestCatalogDeleteAbsentIsNoOp(t *testing.T) {
	c, _ := newTestCatalog(t)
	c.AddItem("Салат Цезарь", "Салаты", "")

	if c.DeleteItem(999) {
		t.Error("DeleteItem(999) = true, want false")
	}
	if got := len(c.Items()); got != 1 {
		t.Errorf("catalog size after absent delete = %d, want 1", got)
	}
}

func TestCatalogItemsByCategoryCaseInsensitive(t *testing.T) {
	c, _ := newTestCatalog(t)
	c.AddItem("Салат Цезарь", "Салаты", "")
	c.AddItem("Оливье", "Салаты", "")
	c.AddItem("Мохито", "Коктейли", "")

	if got := len(c.ItemsByCategory("салаты")); got != 2 {
		t.Errorf("ItemsByCategory(салаты) len = %d, want 2", got)
	}
	if got := len(c.ItemsByCategory("СаЛаТы")); got != 2 {
		t.Errorf("ItemsByCategory(СаЛаТы) len = %d, want 2", got)
	}
	if got := c.ItemsByCategory("Пиво"); got != nil {
		t.Errorf("ItemsByCategory(Пиво) = %v, want empty", got)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	c, path := newTestCatalog(t)
	c.AddItem("Салат Цезарь", "Салаты", "")
	c.AddItem("Мохито", "Коктейли", "")
	want := c.Items()

	reopened := NewCatalog(path, testTaxonomy())
	if got := reopened.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	if reopened.RecoveredFromCorrupt() {
		t.Error("RecoveredFromCorrupt() = true for a well-formed file")
	}
}

func TestCatalogAbsentFileCreatesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "menu.json")
	c := NewCatalog(path, testTaxonomy())
	if len(c.Items()) != 0 {
		t.Errorf("items = %v, want empty", c.Items())
	}
	if c.RecoveredFromCorrupt() {
		t.Error("absent file must not count as corrupt")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("backing file not created: %v", err)
	}
	var records []models.MenuItem
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Errorf("created file is not a JSON array: %v", err)
	}
}

func TestCatalogMalformedFileResetsObservably(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(path, testTaxonomy())
	if !c.RecoveredFromCorrupt() {
		t.Error("RecoveredFromCorrupt() = false, want true")
	}
	if len(c.Items()) != 0 {
		t.Errorf("items after reset = %v, want empty", c.Items())
	}

	// Empty state must have been persisted over the malformed file.
	raw, _ := os.ReadFile(path)
	var records []models.MenuItem
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Errorf("file after reset is not a JSON array: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("file after reset holds %d records, want 0", len(records))
	}
}

func TestCatalogUnreadablePathDegradesToEmpty(t *testing.T) {
	// A directory where the data file should be: present but unreadable as
	// a file. Load must degrade, not fail.
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(path, testTaxonomy())
	if !c.RecoveredFromCorrupt() {
		t.Error("RecoveredFromCorrupt() = false, want true")
	}
	if len(c.Items()) != 0 {
		t.Errorf("items = %v, want empty", c.Items())
	}

	// The degraded store keeps serving; only persistence suffers.
	item := c.AddItem("Салат Цезарь", "Салаты", "")
	if item.ID != 1 {
		t.Errorf("id = %d, want 1", item.ID)
	}
}

func TestCatalogBackfillsMissingMainCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	legacy := `[{"id": 1, "name": "Оливье", "category": "Салаты"}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(path, testTaxonomy())
	item, ok := c.ItemByID(1)
	if !ok {
		t.Fatal("legacy item not loaded")
	}
	if item.MainCategory != "Кухня" {
		t.Errorf("backfilled main category = %q, want Кухня", item.MainCategory)
	}
}
