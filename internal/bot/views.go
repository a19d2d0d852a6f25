package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/model"
)

// handleDashboard показывает главный экран: сводку, распределение по
// категориям, ближайшие списания и счётчик непрочитанных уведомлений
func (b *Bot) handleDashboard(chatID int64) {
	token := b.token(chatID)
	currency := b.currency(chatID)

	dashboard, err := b.tracker.GetDashboard(context.Background(), token, api.PeriodFilter{})
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Дашборд\n\n")
	sb.WriteString(fmt.Sprintf("💰 В месяц: %s\n", formatMoney(dashboard.Summary.TotalMonthly, currency)))
	sb.WriteString(fmt.Sprintf("🔄 Активных подписок: %d\n", dashboard.Summary.Actives))
	sb.WriteString(fmt.Sprintf("💵 Средний платёж: %s\n", formatMoney(dashboard.Summary.AvgAmount, currency)))

	if stats := dashboard.CategoryStats(); len(stats) > 0 {
		sb.WriteString("\nПо категориям:\n")
		for _, stat := range stats {
			sb.WriteString(fmt.Sprintf("• %s: %s (%.1f%%)\n",
				stat.Name, formatMoney(stat.Total, currency), stat.Percentage))
		}
	}

	if len(dashboard.Upcoming) > 0 {
		sb.WriteString("\n📅 Ближайшие списания:\n")
		for _, charge := range dashboard.Upcoming {
			sb.WriteString(fmt.Sprintf("• %s — %s, %s\n",
				charge.ServiceName, formatMoney(charge.Amount, currency), formatDate(charge.ChargeDate)))
		}
	}

	if dashboard.UnreadAlerts > 0 {
		sb.WriteString(fmt.Sprintf("\n🔔 Непрочитанных уведомлений: %d\n", dashboard.UnreadAlerts))
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = b.dashboardKeyboard(dashboard.Upcoming)
	b.tg.Send(msg)
}

// dashboardKeyboard добавляет к главному меню кнопки оплаты
// предстоящих списаний
func (b *Bot) dashboardKeyboard(upcoming []model.UpcomingCharge) tgbotapi.InlineKeyboardMarkup {
	keyboard := b.getMainKeyboard()
	for _, charge := range upcoming {
		if charge.ID == "" {
			continue
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Оплатить "+charge.ServiceName, "pay_charge_"+charge.ID),
		))
	}
	return keyboard
}

// handlePayCharge отмечает предстоящее списание оплаченным
func (b *Bot) handlePayCharge(chatID int64, chargeID string) {
	token := b.token(chatID)
	if err := b.api.PayCharge(context.Background(), token, chargeID); err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	b.sendText(chatID, "Списание оплачено ✅")
	b.handleDashboard(chatID)
}

// handleReports считает отчёт за последние 12 месяцев и отправляет
// текстовую сводку с тремя графиками
func (b *Bot) handleReports(chatID int64) {
	token := b.token(chatID)
	currency := b.currency(chatID)

	period := reportPeriod()
	report, err := b.tracker.GetReport(context.Background(), token, period)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📈 Отчёты\n\n")
	sb.WriteString(fmt.Sprintf("💸 Всего потрачено: %s\n", formatMoney(report.TotalSpent, currency)))
	sb.WriteString(fmt.Sprintf("📅 Годовой прогноз: %s\n", formatMoney(report.AnnualProjection, currency)))
	sb.WriteString(fmt.Sprintf("📂 Активных категорий: %d\n", report.CategoriesCount))

	if len(report.Top) > 0 {
		sb.WriteString("\n🏆 Самые дорогие подписки (в месяц):\n")
		for i, top := range report.Top {
			sb.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, top.ServiceName, formatMoney(top.MonthlyAmount, currency)))
		}
	}

	b.sendText(chatID, sb.String())

	b.sendChart(chatID, "spending.png", func() ([]byte, error) {
		return b.charts.GenerateMonthlySpending(report.MonthlySpending)
	})
	b.sendChart(chatID, "categories.png", func() ([]byte, error) {
		return b.charts.GenerateCategoryDistribution(report.Distribution)
	})
	b.sendChart(chatID, "trend.png", func() ([]byte, error) {
		return b.charts.GenerateSpendingTrend(report.Trend)
	})

	b.sendMainMenu(chatID, "Выберите действие:")
}

// reportPeriod отчёты строятся за последние 12 месяцев
func reportPeriod() api.PeriodFilter {
	now := time.Now()
	yearAgo := now.AddDate(-1, 0, 0)
	return api.PeriodFilter{Initial: &yearAgo, Final: &now}
}

func (b *Bot) sendChart(chatID int64, name string, render func() ([]byte, error)) {
	data, err := render()
	if err != nil {
		b.log.Error("failed to render chart", slog.String("chart", name), slog.Any("error", err))
		return
	}
	if len(data) == 0 {
		return // Нет данных для графика
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	b.tg.Send(photo)
}

// handleProfile показывает профиль с актуальными данными бекенда
func (b *Bot) handleProfile(chatID int64) {
	token := b.token(chatID)

	user, err := b.api.GetProfile(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}
	if err := b.sessions.UpdateUser(chatID, *user); err != nil {
		b.log.Error("failed to persist session", slog.Any("error", err))
	}

	notifications := "выключены 🔕"
	if user.NotificationsEnabled {
		notifications = "включены 🔔"
	}

	text := fmt.Sprintf(
		"👤 Профиль\n\n"+
			"Имя: %s\n"+
			"Email: %s\n"+
			"Валюта: %s\n"+
			"Уведомления: %s",
		user.Name, user.Email, user.Currency, notifications)

	b.sendKeyboard(chatID, text, b.getProfileKeyboard())
}

func (b *Bot) handleNameChange(chatID int64, name string) {
	state := b.state(chatID)
	state.Awaiting = ""

	user := b.sessions.Get(chatID).User
	b.updateProfile(chatID, api.UpdateProfileRequest{
		Name:                 name,
		Currency:             user.Currency,
		NotificationsEnabled: user.NotificationsEnabled,
	})
}

func (b *Bot) handleCurrencyChange(chatID int64, currency string) {
	user := b.sessions.Get(chatID).User
	b.updateProfile(chatID, api.UpdateProfileRequest{
		Name:                 user.Name,
		Currency:             currency,
		NotificationsEnabled: user.NotificationsEnabled,
	})
}

func (b *Bot) handleToggleNotifications(chatID int64) {
	user := b.sessions.Get(chatID).User
	b.updateProfile(chatID, api.UpdateProfileRequest{
		Name:                 user.Name,
		Currency:             user.Currency,
		NotificationsEnabled: !user.NotificationsEnabled,
	})
}

// updateProfile валидирует и сохраняет профиль, затем показывает его заново
func (b *Bot) updateProfile(chatID int64, req api.UpdateProfileRequest) {
	if err := b.validate.Struct(req); err != nil {
		b.sendErrorMessage(chatID, validationMessage(err))
		return
	}

	token := b.token(chatID)
	if err := b.api.UpdateProfile(context.Background(), token, req); err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	b.sendText(chatID, "Профиль обновлён ✅")
	b.handleProfile(chatID)
}
