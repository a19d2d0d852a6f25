package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// Цвета, предлагаемые при создании категории, совпадают с палитрой веб-версии
var categoryColors = []struct {
	Label string
	Hex   string
}{
	{"🔵 Синий", "#3B82F6"},
	{"🟢 Зелёный", "#10B981"},
	{"🔴 Красный", "#EF4444"},
	{"🟡 Жёлтый", "#F59E0B"},
	{"🟣 Фиолетовый", "#8B5CF6"},
	{"🩷 Розовый", "#EC4899"},
	{"🟠 Оранжевый", "#F97316"},
	{"⚪ Серый", "#6B7280"},
}

func (b *Bot) getMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Дашборд", "action_dashboard"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Подписки", "action_subscriptions"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📂 Категории", "action_categories"),
			tgbotapi.NewInlineKeyboardButtonData("🔔 Уведомления", "action_alerts"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Отчёты", "action_reports"),
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", "action_profile"),
		),
	)
}

func (b *Bot) getAuthKeyboard(rememberedEmail string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Войти", "action_login"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Регистрация", "action_register"),
		),
	}
	if rememberedEmail != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Войти как "+rememberedEmail, "login_remembered"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getCategoriesKeyboard(categories []model.Category, prefix string) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, category := range categories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(category.Name, prefix+category.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) getColorKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categoryColors); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(categoryColors[i].Label, "color_"+categoryColors[i].Hex),
		}
		if i+1 < len(categoryColors) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(categoryColors[i+1].Label, "color_"+categoryColors[i+1].Hex))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getBillingCycleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Месячная", "cycle_monthly"),
			tgbotapi.NewInlineKeyboardButtonData("🗓 Годовая", "cycle_yearly"),
		),
	)
}

func (b *Bot) getAlertFiltersKeyboard(unread int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Все", "alerts_all"),
			tgbotapi.NewInlineKeyboardButtonData("Непрочитанные", "alerts_unread"),
			tgbotapi.NewInlineKeyboardButtonData("Прочитанные", "alerts_read"),
		),
	}
	if unread > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Прочитать все", "alerts_mark_all"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "action_back"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getSubscriptionListKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Все", "subs_filter_all"),
			tgbotapi.NewInlineKeyboardButtonData("Активные", "subs_filter_active"),
			tgbotapi.NewInlineKeyboardButtonData("Отменённые", "subs_filter_canceled"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Месячные", "subs_filter_monthly"),
			tgbotapi.NewInlineKeyboardButtonData("Годовые", "subs_filter_yearly"),
			tgbotapi.NewInlineKeyboardButtonData("📂 Категория", "subs_filter_category"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↕️ По дате", "subs_sort_date"),
			tgbotapi.NewInlineKeyboardButtonData("↕️ По сумме", "subs_sort_amount"),
			tgbotapi.NewInlineKeyboardButtonData("↕️ По имени", "subs_sort_name"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Поиск", "subs_search"),
			tgbotapi.NewInlineKeyboardButtonData("➕ Новая подписка", "action_new_subscription"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "action_back"),
		),
	)
}

func (b *Bot) getProfileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Имя", "profile_name"),
			tgbotapi.NewInlineKeyboardButtonData("💱 Валюта", "profile_currency"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔 Уведомления вкл/выкл", "profile_notify"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти", "action_logout"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "action_back"),
		),
	)
}

func (b *Bot) getCurrencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, code := range supportedCurrencies {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(code, "currency_"+code))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}
