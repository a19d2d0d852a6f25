package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/model"
	"github.com/ivanoskov/subscription_bot/internal/service"
)

// handleSubscriptions показывает список подписок с учётом фильтров чата.
// Фильтрация и сортировка клиентские, с бекенда всегда берётся полный список.
func (b *Bot) handleSubscriptions(chatID int64) {
	token := b.token(chatID)
	currency := b.currency(chatID)
	state := b.state(chatID)

	subs, err := b.api.ListSubscriptions(context.Background(), token, api.SubscriptionFilter{})
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	filtered := service.FilterSubscriptions(subs, state.ListOptions)

	var monthlyTotal float64
	active, canceled := 0, 0
	for _, sub := range filtered {
		if sub.Status == model.SubscriptionStatusActive {
			active++
			monthlyTotal += service.MonthlyAmount(sub)
		} else {
			canceled++
		}
	}

	var sb strings.Builder
	sb.WriteString("🔄 Подписки\n")
	if desc := listOptionsLabel(state.ListOptions); desc != "" {
		sb.WriteString(desc + "\n")
	}
	sb.WriteString(fmt.Sprintf("Активных: %d, отменённых: %d\n", active, canceled))
	sb.WriteString(fmt.Sprintf("💰 В месяц: %s\n\n", formatMoney(monthlyTotal, currency)))

	if len(filtered) == 0 {
		sb.WriteString("Ничего не найдено. Измените фильтры или добавьте подписку.")
	}

	keyboard := b.getSubscriptionListKeyboard()
	rows := keyboard.InlineKeyboard
	for _, sub := range filtered {
		title := fmt.Sprintf("%s — %s (%s)",
			sub.ServiceName, formatMoney(sub.Amount, currency), billingCycleLabel(sub.BillingCycle))
		if sub.Status == model.SubscriptionStatusCanceled {
			title = "🚫 " + title
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, "sub_"+sub.ID),
		))
	}
	keyboard.InlineKeyboard = rows

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = keyboard
	b.tg.Send(msg)
}

// listOptionsLabel описывает активные фильтры одной строкой
func listOptionsLabel(opts service.ListOptions) string {
	var parts []string
	if opts.Search != "" {
		parts = append(parts, "поиск: "+opts.Search)
	}
	if opts.Status != "" {
		parts = append(parts, "статус: "+strings.ToLower(statusLabel(opts.Status)))
	}
	if opts.BillingCycle != "" {
		parts = append(parts, "цикл: "+strings.ToLower(billingCycleLabel(opts.BillingCycle)))
	}
	if opts.CategoryID != "" {
		parts = append(parts, "по категории")
	}
	if opts.SortKey != "" && opts.SortKey != service.SortByNextBillingDate {
		switch opts.SortKey {
		case service.SortByAmount:
			parts = append(parts, "сортировка: по сумме")
		case service.SortByServiceName:
			parts = append(parts, "сортировка: по имени")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "🔎 " + strings.Join(parts, ", ")
}

func (b *Bot) handleSubscriptionFilter(chatID int64, filter string) {
	state := b.state(chatID)
	switch filter {
	case "active":
		state.ListOptions.Status = model.SubscriptionStatusActive
	case "canceled":
		state.ListOptions.Status = model.SubscriptionStatusCanceled
	case "monthly":
		state.ListOptions.BillingCycle = model.BillingCycleMonthly
	case "yearly":
		state.ListOptions.BillingCycle = model.BillingCycleYearly
	case "category":
		b.askCategoryFilter(chatID)
		return
	default:
		// "Все" сбрасывает фильтры, сортировка остаётся
		state.ListOptions.Status = ""
		state.ListOptions.Search = ""
		state.ListOptions.BillingCycle = ""
		state.ListOptions.CategoryID = ""
	}
	b.handleSubscriptions(chatID)
}

func (b *Bot) askCategoryFilter(chatID int64) {
	token := b.token(chatID)
	categories, err := b.api.ListCategories(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}
	if len(categories) == 0 {
		b.sendText(chatID, "Категорий пока нет")
		return
	}
	b.sendKeyboard(chatID, "Показать подписки какой категории?", b.getCategoriesKeyboard(categories, "subfilcat_"))
}

func (b *Bot) handleCategoryFilter(chatID int64, categoryID string) {
	b.state(chatID).ListOptions.CategoryID = categoryID
	b.handleSubscriptions(chatID)
}

// handleSubscriptionSort повторное нажатие той же сортировки меняет направление
func (b *Bot) handleSubscriptionSort(chatID int64, key string) {
	state := b.state(chatID)

	sortKey := service.SortByNextBillingDate
	switch key {
	case "amount":
		sortKey = service.SortByAmount
	case "name":
		sortKey = service.SortByServiceName
	}

	if state.ListOptions.SortKey == sortKey {
		state.ListOptions.Descending = !state.ListOptions.Descending
	} else {
		state.ListOptions.SortKey = sortKey
		state.ListOptions.Descending = false
	}
	b.handleSubscriptions(chatID)
}

// handleSubscriptionDetail показывает карточку подписки с действиями
func (b *Bot) handleSubscriptionDetail(chatID int64, id string) {
	token := b.token(chatID)
	currency := b.currency(chatID)

	sub, err := b.api.GetSubscription(context.Background(), token, id)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	text := fmt.Sprintf(
		"🔄 %s\n\n"+
			"Сумма: %s (%s)\n"+
			"В месяц: %s\n"+
			"Следующее списание: %s\n"+
			"Статус: %s",
		sub.ServiceName,
		formatMoney(sub.Amount, currency), billingCycleLabel(sub.BillingCycle),
		formatMoney(service.MonthlyAmount(*sub), currency),
		formatDate(sub.NextBillingDate),
		statusLabel(sub.Status))

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить", "sub_edit_"+sub.ID),
		),
	}
	if sub.Status == model.SubscriptionStatusActive {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Записать оплату", "sub_charge_"+sub.ID),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Отменить", "sub_cancel_"+sub.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 К списку", "action_subscriptions"),
	))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.tg.Send(msg)
}

// startSubscriptionForm начинает создание подписки, а при непустом id
// редактирование существующей
func (b *Bot) startSubscriptionForm(chatID int64, id string) {
	token := b.token(chatID)
	state := b.state(chatID)
	state.resetFlow()

	if id != "" {
		sub, err := b.api.GetSubscription(context.Background(), token, id)
		if err != nil {
			b.sendAPIError(chatID, err)
			return
		}
		state.SubscriptionID = sub.ID
		state.Subscription = api.SubscriptionRequest{
			CategoryID:      sub.CategoryID,
			ServiceName:     sub.ServiceName,
			Amount:          sub.Amount,
			BillingCycle:    sub.BillingCycle,
			NextBillingDate: sub.NextBillingDate.Format("2006-01-02"),
		}
	}

	categories, err := b.api.ListCategories(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}
	if len(categories) == 0 {
		b.sendErrorMessage(chatID, "Сначала создайте хотя бы одну категорию")
		b.handleCategories(chatID)
		return
	}

	b.sendKeyboard(chatID, "Выберите категорию подписки:", b.getCategoriesKeyboard(categories, "subcat_"))
}

func (b *Bot) handleSubscriptionCategory(chatID int64, categoryID string) {
	state := b.state(chatID)
	state.Subscription.CategoryID = categoryID
	state.Awaiting = awaitServiceName
	b.sendText(chatID, "Введите название сервиса (например, Netflix):")
}

// handleSubscriptionInput ведёт пользователя по текстовым шагам формы
func (b *Bot) handleSubscriptionInput(chatID int64, state *chatState, text string) {
	switch state.Awaiting {
	case awaitServiceName:
		state.Subscription.ServiceName = text
		state.Awaiting = awaitAmount
		b.sendText(chatID, "Введите сумму платежа, например 34.90:")

	case awaitAmount:
		amount, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		if err != nil || amount <= 0 {
			b.sendErrorMessage(chatID, "Неверный формат суммы. Используйте число, например: 34.90")
			return
		}
		state.Subscription.Amount = amount
		state.Awaiting = ""
		b.sendKeyboard(chatID, "Выберите цикл оплаты:", b.getBillingCycleKeyboard())

	case awaitBillingDate:
		date, err := parseUserDate(text)
		if err != nil {
			b.sendErrorMessage(chatID, "Неверный формат даты. Используйте ДД.ММ.ГГГГ")
			return
		}
		state.Subscription.NextBillingDate = date.Format("2006-01-02")
		state.Awaiting = ""
		b.saveSubscription(chatID, state)
	}
}

func (b *Bot) handleSubscriptionCycle(chatID int64, cycle string) {
	state := b.state(chatID)
	if state.Subscription.CategoryID == "" {
		return // цикл выбран вне формы
	}
	state.Subscription.BillingCycle = cycle
	state.Awaiting = awaitBillingDate
	b.sendText(chatID, "Введите дату следующего списания (ДД.ММ.ГГГГ):")
}

func (b *Bot) saveSubscription(chatID int64, state *chatState) {
	if err := b.validate.Struct(state.Subscription); err != nil {
		state.resetFlow()
		b.sendErrorMessage(chatID, validationMessage(err))
		return
	}

	token := b.token(chatID)
	if state.SubscriptionID != "" {
		if err := b.api.UpdateSubscription(context.Background(), token, state.SubscriptionID, state.Subscription); err != nil {
			state.resetFlow()
			b.sendAPIError(chatID, err)
			return
		}
		state.resetFlow()
		b.sendText(chatID, "Подписка обновлена ✅")
	} else {
		if _, err := b.api.CreateSubscription(context.Background(), token, state.Subscription); err != nil {
			state.resetFlow()
			b.sendAPIError(chatID, err)
			return
		}
		state.resetFlow()
		b.sendText(chatID, "Подписка добавлена ✅")
	}

	b.handleSubscriptions(chatID)
}

// handleChargePreview показывает, куда сдвинется дата оплаты после списания
func (b *Bot) handleChargePreview(chatID int64, id string) {
	token := b.token(chatID)
	currency := b.currency(chatID)

	sub, err := b.api.GetSubscription(context.Background(), token, id)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	next := service.NextBillingDate(*sub)
	text := fmt.Sprintf(
		"Записать оплату %s на %s?\n\n"+
			"Текущая дата списания: %s\n"+
			"Следующая дата списания: %s",
		sub.ServiceName, formatMoney(sub.Amount, currency),
		formatDate(sub.NextBillingDate), formatDate(next))

	b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "sub_charge_confirm_"+sub.ID),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "sub_"+sub.ID),
		),
	))
}

func (b *Bot) handleChargeConfirm(chatID int64, id string) {
	token := b.token(chatID)
	if err := b.api.CreateCharge(context.Background(), token, id); err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	b.sendText(chatID, "Оплата записана ✅")
	b.handleSubscriptionDetail(chatID, id)
}

func (b *Bot) handleCancelPreview(chatID int64, id string) {
	token := b.token(chatID)

	sub, err := b.api.GetSubscription(context.Background(), token, id)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	text := fmt.Sprintf(
		"Отменить подписку %s?\n\n"+
			"Новые списания создаваться не будут, история оплат сохранится.",
		sub.ServiceName)

	b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Отменить подписку", "sub_cancel_confirm_"+sub.ID),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "sub_"+sub.ID),
		),
	))
}

func (b *Bot) handleCancelConfirm(chatID int64, id string) {
	token := b.token(chatID)
	if err := b.api.CancelSubscription(context.Background(), token, id); err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	b.sendText(chatID, "Подписка отменена 🚫")
	b.handleSubscriptions(chatID)
}
