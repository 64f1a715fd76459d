package engine

import (
	"fmt"
	"strings"

	"waiter-telegram/models"
)

// groupLines splits order lines by subcategory, keeping categories in the
// order their first line was added.
func groupLines(lines []models.OrderLine) (categories []string, byCategory map[string][]models.OrderLine) {
	byCategory = make(map[string][]models.OrderLine)
	for _, line := range lines {
		category := line.MenuItem.Category
		if _, seen := byCategory[category]; !seen {
			categories = append(categories, category)
		}
		byCategory[category] = append(byCategory[category], line)
	}
	return categories, byCategory
}

func formatOrder(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Заказ #%d (Стол %d)\n\n", order.ID, order.TableNumber)

	if len(order.Items) == 0 {
		b.WriteString("Заказ пуст. Добавьте позиции из меню.\n")
		return b.String()
	}

	categories, byCategory := groupLines(order.Items)
	for _, category := range categories {
		fmt.Fprintf(&b, "%s:\n", category)
		for i, line := range byCategory[category] {
			fmt.Fprintf(&b, "    %d. %s x%d\n", i+1, line.MenuItem.Name, line.Quantity)
		}
	}
	return b.String()
}

// formatReceipt is the one-shot receipt shown when an order is closed; it is
// never persisted.
func formatReceipt(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ ЗАКАЗ #%d ЗАКРЫТ\n\n", order.ID)
	fmt.Fprintf(&b, "Дата: %s\n", order.CreatedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "Стол: %d\n\n", order.TableNumber)
	b.WriteString("СОСТАВ ЗАКАЗА:\n")

	categories, byCategory := groupLines(order.Items)
	for _, category := range categories {
		fmt.Fprintf(&b, "%s:\n", category)
		for i, line := range byCategory[category] {
			fmt.Fprintf(&b, "  %d. %s x%d\n", i+1, line.MenuItem.Name, line.Quantity)
		}
	}
	return b.String()
}
