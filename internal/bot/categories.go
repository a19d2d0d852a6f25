package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCategories показывает список категорий с кнопками управления
func (b *Bot) handleCategories(chatID int64) {
	token := b.token(chatID)

	categories, err := b.api.ListCategories(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	text := "📂 Ваши категории:\n\n"
	if len(categories) == 0 {
		text = "📂 Категорий пока нет. Создайте первую:"
	}
	for _, category := range categories {
		text += fmt.Sprintf("• %s (%s)\n", category.Name, category.Color)
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, category := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ "+category.Name, "cat_edit_"+category.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑", "cat_delete_"+category.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Новая категория", "action_new_category"),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "action_back"),
	))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.tg.Send(msg)
}

// startCategoryEdit начинает редактирование: имя спрашивается заново,
// затем цвет
func (b *Bot) startCategoryEdit(chatID int64, id string) {
	state := b.state(chatID)
	state.resetFlow()
	state.CategoryID = id
	state.Awaiting = awaitCategoryName
	b.sendText(chatID, "Введите новое название категории:")
}

func (b *Bot) handleCategoryName(chatID int64, name string) {
	state := b.state(chatID)
	state.Category.Name = name
	state.Awaiting = ""
	b.sendKeyboard(chatID, "Выберите цвет категории:", b.getColorKeyboard())
}

// handleCategoryColor завершает форму категории: создаёт новую или
// сохраняет изменения существующей
func (b *Bot) handleCategoryColor(chatID int64, color string) {
	state := b.state(chatID)
	if state.Category.Name == "" {
		return // цвет выбран вне формы
	}
	state.Category.Color = color

	if err := b.validate.Struct(state.Category); err != nil {
		state.resetFlow()
		b.sendErrorMessage(chatID, validationMessage(err))
		return
	}

	token := b.token(chatID)
	req := state.Category
	categoryID := state.CategoryID
	state.resetFlow()

	if categoryID != "" {
		if err := b.api.UpdateCategory(context.Background(), token, categoryID, req); err != nil {
			b.sendAPIError(chatID, err)
			return
		}
		b.sendText(chatID, fmt.Sprintf("Категория «%s» обновлена ✅", req.Name))
	} else {
		if _, err := b.api.CreateCategory(context.Background(), token, req); err != nil {
			b.sendAPIError(chatID, err)
			return
		}
		b.sendText(chatID, fmt.Sprintf("Категория «%s» создана ✅", req.Name))
	}

	b.handleCategories(chatID)
}

// handleCategoryDeletePreview предупреждает, что подписки категории
// останутся без неё
func (b *Bot) handleCategoryDeletePreview(chatID int64, id string) {
	token := b.token(chatID)

	categories, err := b.api.ListCategories(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	name := id
	for _, category := range categories {
		if category.ID == id {
			name = category.Name
			break
		}
	}

	text := fmt.Sprintf(
		"Удалить категорию «%s»?\n\n"+
			"Подписки останутся, но попадут в «Без категории».", name)

	b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", "cat_delete_confirm_"+id),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "action_categories"),
		),
	))
}

func (b *Bot) handleCategoryDeleteConfirm(chatID int64, id string) {
	token := b.token(chatID)
	if err := b.api.DeleteCategory(context.Background(), token, id); err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	b.sendText(chatID, "Категория удалена 🗑")
	b.handleCategories(chatID)
}
