package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// tableLabel and friends are the dynamic option strings of the order flow.
func tableLabel(n int) string { return fmt.Sprintf("Стол %d", n) }

func orderListLabel(tableNumber, lineCount int) string {
	return fmt.Sprintf("Стол %d - %d поз.", tableNumber, lineCount)
}

func addLinesLabel(tableNumber int) string {
	return fmt.Sprintf("➕ Добавить позиции (Стол %d)", tableNumber)
}

func closeOrderLabel(tableNumber int) string {
	return fmt.Sprintf("✅ Закрыть заказ (Стол %d)", tableNumber)
}

func (e *Engine) tablesResponse() Response {
	opts := make([]string, 0, e.orders.TableCount()+1)
	for n := 1; n <= e.orders.TableCount(); n++ {
		opts = append(opts, tableLabel(n))
	}
	opts = append(opts, btnBackToMain)
	return Response{
		Text:    "🆕 Новый заказ\n\nВыберите номер стола:",
		Options: opts,
	}
}

func (e *Engine) mainCategoriesResponse(text string) Response {
	opts := append([]string{}, e.catalog.MainCategories()...)
	opts = append(opts, btnFinishOrder, btnBackToTables)
	return Response{Text: text, Options: opts}
}

func (e *Engine) subcategoriesResponse(main string) Response {
	opts := append([]string{}, e.catalog.Subcategories(main)...)
	opts = append(opts, btnBackToMains)
	return Response{
		Text:    fmt.Sprintf("%s\n\nВыберите категорию блюд:", main),
		Options: opts,
	}
}

func (e *Engine) itemsResponse(category string) Response {
	items := e.catalog.ItemsByCategory(category)
	opts := make([]string, 0, len(items)+1)
	for _, item := range items {
		opts = append(opts, item.Name)
	}
	opts = append(opts, btnBackToSubcats)
	return Response{
		Text:    fmt.Sprintf("🍽️ Выберите позицию из категории «%s»", category),
		Options: opts,
	}
}

func quantityResponse(itemName string) Response {
	return Response{
		Text:    fmt.Sprintf("🔢 Выберите количество\n\nБлюдо: %s", itemName),
		Options: []string{"1", "2", "3", "4", "5", btnOtherQty, btnBack},
	}
}

func (e *Engine) handleSelectingTable(text string) (state, Response) {
	if text == btnBackToMain {
		return e.toRoot("Вы вернулись в главное меню.")
	}

	tableNumber, ok := parseTableLabel(text)
	if !ok || tableNumber < 1 || tableNumber > e.orders.TableCount() {
		return selectingTable{}, Response{
			Text:    "❌ Пожалуйста, выберите стол из списка:",
			Options: e.tablesResponse().Options,
		}
	}

	if existing, ok := e.orders.ActiveOrderForTable(tableNumber); ok {
		return managingOrder{OrderID: existing.ID}, Response{
			Text:    fmt.Sprintf("📋 Существующий заказ для стола %d\n\n%s", tableNumber, formatOrder(existing)),
			Options: orderActionOptions(tableNumber),
		}
	}

	order, err := e.orders.CreateOrder(tableNumber)
	if err != nil {
		// Table range was validated above, so this only fires if the
		// configuration changed mid-session.
		return selectingTable{}, Response{
			Text:    "❌ Пожалуйста, выберите стол из списка:",
			Options: e.tablesResponse().Options,
		}
	}
	return selectingMainCategory{OrderID: order.ID},
		e.mainCategoriesResponse(fmt.Sprintf("🆕 Новый заказ для стола %d\n\nВыберите раздел меню:", tableNumber))
}

func parseTableLabel(text string) (int, bool) {
	rest, found := strings.CutPrefix(text, "Стол ")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (e *Engine) handleSelectingMainCategory(s selectingMainCategory, text string) (state, Response) {
	switch text {
	case btnBackToTables:
		return selectingTable{}, e.tablesResponse()
	case btnFinishOrder:
		return e.finishOrder(s.OrderID)
	}

	for _, main := range e.catalog.MainCategories() {
		if text == main {
			return selectingSubcategory{OrderID: s.OrderID, Main: main}, e.subcategoriesResponse(main)
		}
	}
	return s, e.mainCategoriesResponse("❌ Пожалуйста, выберите раздел меню из списка:")
}

// finishOrder is the "finish" sentinel: an order without a single line is
// cancelled (deleted) instead of being left as an empty active order; an
// order with lines is summarized and stays active for later management.
func (e *Engine) finishOrder(orderID int) (state, Response) {
	order, ok := e.orders.OrderByID(orderID)
	if !ok {
		return e.toRoot("❌ Заказ не найден.")
	}
	if len(order.Items) == 0 {
		e.orders.CloseOrder(orderID)
		return e.toRoot("❌ Заказ отменен, так как не было добавлено ни одной позиции.")
	}
	return e.toRoot(fmt.Sprintf("✅ Заказ для стола %d создан\n\n%s", order.TableNumber, formatOrder(order)))
}

func (e *Engine) handleSelectingSubcategory(s selectingSubcategory, text string) (state, Response) {
	if text == btnBackToMains {
		return selectingMainCategory{OrderID: s.OrderID}, e.mainCategoriesResponse("Выберите раздел меню:")
	}

	if !contains(e.catalog.Subcategories(s.Main), text) {
		resp := e.subcategoriesResponse(s.Main)
		resp.Text = "❌ Пожалуйста, выберите категорию из списка:"
		return s, resp
	}

	if len(e.catalog.ItemsByCategory(text)) == 0 {
		resp := e.subcategoriesResponse(s.Main)
		resp.Text = fmt.Sprintf("❌ В категории «%s» нет позиций.", text)
		return s, resp
	}
	return selectingItem{OrderID: s.OrderID, Main: s.Main, Category: text}, e.itemsResponse(text)
}

func (e *Engine) handleSelectingItem(s selectingItem, text string) (state, Response) {
	if text == btnBackToSubcats {
		return selectingSubcategory{OrderID: s.OrderID, Main: s.Main}, e.subcategoriesResponse(s.Main)
	}

	for _, item := range e.catalog.ItemsByCategory(s.Category) {
		if item.Name == text {
			return enteringQuantity{
				OrderID:  s.OrderID,
				ItemID:   item.ID,
				Main:     s.Main,
				Category: s.Category,
			}, quantityResponse(item.Name)
		}
	}
	resp := e.itemsResponse(s.Category)
	resp.Text = "❌ Пожалуйста, выберите блюдо из списка:"
	return s, resp
}

func (e *Engine) handleEnteringQuantity(s enteringQuantity, text string) (state, Response) {
	switch text {
	case btnBack:
		return selectingItem{OrderID: s.OrderID, Main: s.Main, Category: s.Category},
			e.itemsResponse(s.Category)
	case btnOtherQty:
		s.FreeForm = true
		return s, Response{
			Text:     "Введите количество (число):",
			Options:  []string{btnBack},
			FreeForm: true,
		}
	}

	quantity, err := strconv.Atoi(text)
	if err != nil || quantity <= 0 {
		if s.FreeForm {
			return s, Response{
				Text:     "❌ Пожалуйста, введите корректное положительное число.",
				Options:  []string{btnBack},
				FreeForm: true,
			}
		}
		item, _ := e.catalog.ItemByID(s.ItemID)
		resp := quantityResponse(item.Name)
		resp.Text = "❌ Пожалуйста, введите корректное положительное число."
		return s, resp
	}

	item, ok := e.catalog.ItemByID(s.ItemID)
	if !ok {
		return e.toRoot("❌ Ошибка при добавлении позиции. Попробуйте снова.")
	}
	if err := e.orders.AddLine(s.OrderID, item, quantity); err != nil {
		return e.toRoot("❌ Ошибка при добавлении позиции. Попробуйте снова.")
	}
	return selectingMainCategory{OrderID: s.OrderID},
		e.mainCategoriesResponse(fmt.Sprintf("✅ В заказ добавлено: %s x%d\n\nВыберите раздел меню или завершите заказ:", item.Name, quantity))
}

// enterActiveOrders builds the active-orders listing, or stays at root when
// there is nothing to show.
func (e *Engine) enterActiveOrders() (state, Response) {
	active := e.orders.ActiveOrders()
	if len(active) == 0 {
		return nil, Response{
			Text:    "📋 Активные заказы\n\nНа данный момент нет активных заказов.",
			Options: rootOptions(),
		}
	}

	labels := make(map[string]int, len(active))
	opts := make([]string, 0, len(active)+1)
	for _, o := range active {
		label := orderListLabel(o.TableNumber, len(o.Items))
		labels[label] = o.ID
		opts = append(opts, label)
	}
	opts = append(opts, btnBackToMain)
	return viewingOrders{Labels: labels}, Response{
		Text:    "📋 Активные заказы\n\nВыберите заказ для просмотра:",
		Options: opts,
	}
}

func (e *Engine) handleViewingOrders(s viewingOrders, text string) (state, Response) {
	if text == btnBackToMain {
		return e.toRoot("Вы вернулись в главное меню.")
	}

	orderID, ok := s.Labels[text]
	if !ok {
		st, resp := e.enterActiveOrders()
		resp.Text = "❌ Пожалуйста, выберите заказ из списка:"
		return st, resp
	}

	order, ok := e.orders.OrderByID(orderID)
	if !ok {
		// Closed between listing and selection: rebuild the listing.
		st, resp := e.enterActiveOrders()
		resp.Text = "❌ Заказ не найден.\n\n" + resp.Text
		return st, resp
	}

	return managingOrder{OrderID: orderID}, Response{
		Text:    fmt.Sprintf("📋 Заказ для стола %d\n\n%s", order.TableNumber, formatOrder(order)),
		Options: orderActionOptions(order.TableNumber),
	}
}

func orderActionOptions(tableNumber int) []string {
	return []string{addLinesLabel(tableNumber), closeOrderLabel(tableNumber), btnBackToOrders}
}

func (e *Engine) handleManagingOrder(s managingOrder, text string) (state, Response) {
	if text == btnBackToOrders {
		return e.enterActiveOrders()
	}

	order, ok := e.orders.OrderByID(s.OrderID)
	if !ok {
		return e.toRoot("❌ Заказ не найден.")
	}

	switch {
	case strings.HasPrefix(text, "➕ Добавить позиции"):
		return selectingMainCategory{OrderID: s.OrderID},
			e.mainCategoriesResponse(fmt.Sprintf("🆕 Добавление позиций в заказ стола %d\n\nВыберите раздел меню:", order.TableNumber))
	case strings.HasPrefix(text, "✅ Закрыть заказ"):
		return confirmingClose{OrderID: s.OrderID}, Response{
			Text: fmt.Sprintf("⚠️ Подтверждение закрытия заказа\n\n%s\n\nВы действительно хотите закрыть заказ для стола %d?",
				formatOrder(order), order.TableNumber),
			Options: []string{btnConfirmClose, btnCancelClose},
		}
	}
	return s, Response{
		Text:    "❌ Пожалуйста, выберите действие из списка:",
		Options: orderActionOptions(order.TableNumber),
	}
}

func (e *Engine) handleConfirmingClose(s confirmingClose, text string) (state, Response) {
	switch text {
	case btnConfirmClose:
		// The receipt is built before the close makes the order unreachable;
		// it is emitted once and never persisted.
		order, ok := e.orders.OrderByID(s.OrderID)
		if !ok {
			return e.toRoot("❌ Заказ не найден! Возможно, он был уже закрыт.")
		}
		if !e.orders.CloseOrder(s.OrderID) {
			return e.toRoot("❌ Ошибка при закрытии заказа!")
		}
		return e.toRoot(formatReceipt(order))
	case btnCancelClose:
		order, ok := e.orders.OrderByID(s.OrderID)
		if !ok {
			return e.toRoot("❌ Заказ не найден.")
		}
		return managingOrder{OrderID: s.OrderID}, Response{
			Text:    "Отмена закрытия заказа. Вы вернулись к управлению заказом.",
			Options: orderActionOptions(order.TableNumber),
		}
	}
	return s, Response{
		Text:    "❌ Пожалуйста, выберите действие из списка:",
		Options: []string{btnConfirmClose, btnCancelClose},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
