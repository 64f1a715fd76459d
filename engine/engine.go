// Package engine implements the conversational workflow: a finite-state
// machine per session that interprets text selections, mutates the catalog
// and order stores, and answers with the text plus the legal next inputs.
// It knows nothing about Telegram; the transport renders Response values.
package engine

import (
	"strings"
	"sync"

	"waiter-telegram/store"
)

// Button labels. These double as the state-machine inputs, so the transport
// must present them verbatim.
const (
	btnNewOrder     = "🆕 Новый заказ"
	btnActiveOrders = "📋 Активные заказы"
	btnMenu         = "🍽️ Меню"

	btnBackToMain    = "🔙 Вернуться в главное меню"
	btnBackToTables  = "🔙 Назад к столам"
	btnBackToMains   = "🔙 Назад к основным категориям"
	btnBackToSubcats = "🔙 Назад к подкатегориям"
	btnBackToOrders  = "🔙 Назад к заказам"
	btnBackToMenu    = "🔙 Назад в меню"
	btnBack          = "🔙 Назад"

	btnFinishOrder  = "✅ Завершить заказ"
	btnOtherQty     = "Другое количество"
	btnConfirmClose = "✅ Да, закрыть заказ"
	btnCancelClose  = "❌ Нет, отмена"

	btnEditMenu   = "⚙️ Изменить меню"
	btnAddItem    = "➕ Добавить позицию"
	btnDeleteItem = "➖ Удалить позицию"
	btnYes        = "✅ Да"
	btnNo         = "❌ Нет"
)

// Response describes the reply for one incoming text event: the message and
// the ordered set of inputs that are legal next. FreeForm marks prompts where
// arbitrary text is expected (quantity, item name); Options then only lists
// escape buttons.
type Response struct {
	Text     string
	Options  []string
	FreeForm bool
}

// Engine drives one finite-state dialogue per session. Session identity is
// opaque and supplied by the transport. The engine owns no catalog or order
// data, only the per-session transient selections.
type Engine struct {
	catalog *store.Catalog
	orders  *store.Orders

	mu       sync.Mutex
	sessions map[string]state
}

func New(catalog *store.Catalog, orders *store.Orders) *Engine {
	return &Engine{
		catalog:  catalog,
		orders:   orders,
		sessions: make(map[string]state),
	}
}

// Reset clears any in-progress flow for the session, returning it to the
// root state. No store data is touched.
func (e *Engine) Reset(sessionID string) {
	e.mu.Lock()
	delete(e.sessions, sessionID)
	e.mu.Unlock()
}

// HandleText processes one incoming text event to completion: resolve the
// current state, validate the input, mutate the stores as needed, store the
// next state, emit the response. Errors never escape; they become responses
// that return the session to a safe state.
func (e *Engine) HandleText(sessionID, text string) Response {
	text = strings.TrimSpace(text)

	switch text {
	case "/start":
		e.Reset(sessionID)
		return e.welcome()
	case "/help":
		return e.help()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, resp := e.dispatch(e.sessions[sessionID], text)
	if next == nil {
		delete(e.sessions, sessionID)
	} else {
		e.sessions[sessionID] = next
	}
	return resp
}

func (e *Engine) dispatch(st state, text string) (state, Response) {
	switch s := st.(type) {
	case nil:
		return e.handleRoot(text)
	case selectingTable:
		return e.handleSelectingTable(text)
	case selectingMainCategory:
		return e.handleSelectingMainCategory(s, text)
	case selectingSubcategory:
		return e.handleSelectingSubcategory(s, text)
	case selectingItem:
		return e.handleSelectingItem(s, text)
	case enteringQuantity:
		return e.handleEnteringQuantity(s, text)
	case viewingOrders:
		return e.handleViewingOrders(s, text)
	case managingOrder:
		return e.handleManagingOrder(s, text)
	case confirmingClose:
		return e.handleConfirmingClose(s, text)
	case menuRoot:
		return e.handleMenuRoot(text)
	case editMenuRoot:
		return e.handleEditMenuRoot(text)
	case addSelectMain:
		return e.handleAddSelectMain(text)
	case addSelectCategory:
		return e.handleAddSelectCategory(s, text)
	case addEnterName:
		return e.handleAddEnterName(s, text)
	case delSelectMain:
		return e.handleDelSelectMain(text)
	case delSelectCategory:
		return e.handleDelSelectCategory(s, text)
	case delSelectItem:
		return e.handleDelSelectItem(s, text)
	case confirmDelete:
		return e.handleConfirmDelete(s, text)
	default:
		return e.toRoot("Вы вернулись в главное меню.")
	}
}

func (e *Engine) welcome() Response {
	return Response{
		Text: "👋 Добро пожаловать в систему заказов для официантов!\n\n" +
			"С помощью этого бота вы можете:\n" +
			"• Создавать новые заказы\n" +
			"• Просматривать активные заказы\n" +
			"• Управлять меню заведения\n\n" +
			"Используйте кнопки внизу для навигации.",
		Options: rootOptions(),
	}
}

func (e *Engine) help() Response {
	return Response{
		Text: "📖 Справка по использованию бота:\n\n" +
			"🆕 Новый заказ — создание нового заказа. Выберите стол и добавьте позиции из меню.\n\n" +
			"📋 Активные заказы — просмотр и управление текущими заказами. Вы можете " +
			"добавить позиции или закрыть заказ.\n\n" +
			"🍽️ Меню — просмотр и редактирование меню заведения. Здесь можно добавлять " +
			"и удалять позиции в разных категориях.\n\n" +
			"Для начала работы нажмите на одну из кнопок внизу.",
		Options: rootOptions(),
	}
}

func rootOptions() []string {
	return []string{btnNewOrder, btnActiveOrders, btnMenu}
}

// toRoot drops any in-progress flow and answers with the root options.
func (e *Engine) toRoot(text string) (state, Response) {
	return nil, Response{Text: text, Options: rootOptions()}
}

func (e *Engine) handleRoot(text string) (state, Response) {
	switch text {
	case btnNewOrder:
		return selectingTable{}, e.tablesResponse()
	case btnActiveOrders:
		return e.enterActiveOrders()
	case btnMenu:
		return menuRoot{}, menuRootResponse()
	case btnBackToMain:
		return e.toRoot("Вы вернулись в главное меню.")
	default:
		return nil, Response{
			Text:    "Выберите действие с помощью кнопок внизу.",
			Options: rootOptions(),
		}
	}
}
