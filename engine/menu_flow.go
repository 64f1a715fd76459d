package engine

import (
	"fmt"
	"strings"
)

func menuRootResponse() Response {
	return Response{
		Text:    "🍽️ Меню ресторана\n\nВыберите действие:",
		Options: []string{btnEditMenu, btnBackToMain},
	}
}

func editMenuResponse(text string) Response {
	return Response{
		Text:    text,
		Options: []string{btnAddItem, btnDeleteItem, btnBackToMenu},
	}
}

func (e *Engine) mainCategoryPickResponse(text string) Response {
	opts := append([]string{}, e.catalog.MainCategories()...)
	opts = append(opts, btnBack)
	return Response{Text: text, Options: opts}
}

func (e *Engine) subcategoryPickResponse(main, text string) Response {
	opts := append([]string{}, e.catalog.Subcategories(main)...)
	opts = append(opts, btnBack)
	return Response{Text: text, Options: opts}
}

func (e *Engine) deleteItemPickResponse(category string) Response {
	items := e.catalog.ItemsByCategory(category)
	opts := make([]string, 0, len(items)+1)
	for _, item := range items {
		opts = append(opts, item.Name)
	}
	opts = append(opts, btnBack)
	return Response{
		Text:    fmt.Sprintf("➖ Удаление позиции из категории: %s\n\nВыберите позицию для удаления:", category),
		Options: opts,
	}
}

func (e *Engine) handleMenuRoot(text string) (state, Response) {
	switch text {
	case btnEditMenu:
		return editMenuRoot{}, editMenuResponse("⚙️ Изменение меню\n\nВыберите действие:")
	case btnBackToMain:
		return e.toRoot("Вы вернулись в главное меню.")
	}
	return menuRoot{}, Response{
		Text:    "❌ Пожалуйста, выберите действие из списка:",
		Options: menuRootResponse().Options,
	}
}

func (e *Engine) handleEditMenuRoot(text string) (state, Response) {
	switch text {
	case btnAddItem:
		return addSelectMain{},
			e.mainCategoryPickResponse("➕ Добавление новой позиции\n\nВыберите основную категорию (Кухня/Бар):")
	case btnDeleteItem:
		return delSelectMain{},
			e.mainCategoryPickResponse("➖ Удаление позиции\n\nВыберите основную категорию (Кухня/Бар):")
	case btnBackToMenu:
		return menuRoot{}, menuRootResponse()
	}
	return editMenuRoot{}, editMenuResponse("❌ Пожалуйста, выберите действие из списка:")
}

func (e *Engine) handleAddSelectMain(text string) (state, Response) {
	if text == btnBack {
		return editMenuRoot{}, editMenuResponse("⚙️ Изменение меню\n\nВыберите действие:")
	}
	if !contains(e.catalog.MainCategories(), text) {
		return addSelectMain{}, e.mainCategoryPickResponse("❌ Пожалуйста, выберите категорию из списка.")
	}
	return addSelectCategory{Main: text}, e.subcategoryPickResponse(text,
		fmt.Sprintf("➕ Добавление позиции\n\nВыбрана основная категория: %s\nВыберите подкатегорию:", text))
}

func (e *Engine) handleAddSelectCategory(s addSelectCategory, text string) (state, Response) {
	if text == btnBack {
		return addSelectMain{},
			e.mainCategoryPickResponse("➕ Добавление новой позиции\n\nВыберите основную категорию (Кухня/Бар):")
	}
	if !contains(e.catalog.Subcategories(s.Main), text) {
		return s, e.subcategoryPickResponse(s.Main, "❌ Пожалуйста, выберите подкатегорию из списка.")
	}
	return addEnterName{Main: s.Main, Category: text}, Response{
		Text:     fmt.Sprintf("➕ Добавление позиции в категорию: %s\n\nВведите название блюда:", text),
		Options:  []string{btnBack},
		FreeForm: true,
	}
}

func (e *Engine) handleAddEnterName(s addEnterName, text string) (state, Response) {
	if text == btnBack {
		return addSelectCategory{Main: s.Main},
			e.subcategoryPickResponse(s.Main, "Выберите подкатегорию для новой позиции:")
	}

	name := strings.TrimSpace(text)
	if name == "" {
		return s, Response{
			Text:     "❌ Название не может быть пустым. Введите название блюда:",
			Options:  []string{btnBack},
			FreeForm: true,
		}
	}

	e.catalog.AddItem(name, s.Category, s.Main)
	return editMenuRoot{},
		editMenuResponse(fmt.Sprintf("✅ Позиция «%s» успешно добавлена в категорию «%s».", name, s.Category))
}

func (e *Engine) handleDelSelectMain(text string) (state, Response) {
	if text == btnBack {
		return editMenuRoot{}, editMenuResponse("⚙️ Изменение меню\n\nВыберите действие:")
	}
	if !contains(e.catalog.MainCategories(), text) {
		return delSelectMain{}, e.mainCategoryPickResponse("❌ Пожалуйста, выберите категорию из списка.")
	}
	return delSelectCategory{Main: text}, e.subcategoryPickResponse(text,
		fmt.Sprintf("➖ Удаление позиции\n\nВыбрана основная категория: %s\nВыберите подкатегорию:", text))
}

func (e *Engine) handleDelSelectCategory(s delSelectCategory, text string) (state, Response) {
	if text == btnBack {
		return delSelectMain{},
			e.mainCategoryPickResponse("➖ Удаление позиции\n\nВыберите основную категорию (Кухня/Бар):")
	}
	if !contains(e.catalog.Subcategories(s.Main), text) {
		return s, e.subcategoryPickResponse(s.Main, "❌ Пожалуйста, выберите подкатегорию из списка.")
	}

	// Nothing to delete in an empty subcategory: short-circuit back instead
	// of showing an empty item list.
	if len(e.catalog.ItemsByCategory(text)) == 0 {
		return editMenuRoot{}, editMenuResponse(fmt.Sprintf("❌ В категории «%s» нет позиций.", text))
	}
	return delSelectItem{Main: s.Main, Category: text}, e.deleteItemPickResponse(text)
}

func (e *Engine) handleDelSelectItem(s delSelectItem, text string) (state, Response) {
	if text == btnBack {
		return delSelectCategory{Main: s.Main}, e.subcategoryPickResponse(s.Main,
			fmt.Sprintf("➖ Удаление позиции\n\nВыбрана основная категория: %s\nВыберите подкатегорию:", s.Main))
	}

	for _, item := range e.catalog.ItemsByCategory(s.Category) {
		if item.Name == text {
			return confirmDelete{Main: s.Main, Category: s.Category, ItemID: item.ID, ItemName: item.Name}, Response{
				Text:    fmt.Sprintf("⚠️ Подтверждение удаления\n\nВы действительно хотите удалить «%s» из меню?", item.Name),
				Options: []string{btnYes, btnNo},
			}
		}
	}
	resp := e.deleteItemPickResponse(s.Category)
	resp.Text = "❌ Позиция не найдена. Выберите позицию для удаления:"
	return s, resp
}

func (e *Engine) handleConfirmDelete(s confirmDelete, text string) (state, Response) {
	switch text {
	case btnNo:
		return delSelectItem{Main: s.Main, Category: s.Category}, e.deleteItemPickResponse(s.Category)
	case btnYes:
		if e.catalog.DeleteItem(s.ItemID) {
			return editMenuRoot{},
				editMenuResponse(fmt.Sprintf("✅ Позиция «%s» успешно удалена из категории «%s».", s.ItemName, s.Category))
		}
		return editMenuRoot{}, editMenuResponse("❌ Ошибка при удалении позиции.")
	}
	return s, Response{
		Text:    "❌ Пожалуйста, выберите Да или Нет.",
		Options: []string{btnYes, btnNo},
	}
}
