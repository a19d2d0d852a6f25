package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/subscription_bot/internal/service"
)

// handleAlerts показывает уведомления с выбранным фильтром.
// Список всегда берётся свежим, фильтрация клиентская.
func (b *Bot) handleAlerts(chatID int64, filter string) {
	token := b.token(chatID)

	alerts, err := b.api.ListAlerts(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	filtered := service.FilterAlerts(alerts, filter)
	unread := service.CountUnread(alerts)

	var sb strings.Builder
	sb.WriteString("🔔 Уведомления")
	switch filter {
	case service.AlertFilterUnread:
		sb.WriteString(" (непрочитанные)")
	case service.AlertFilterRead:
		sb.WriteString(" (прочитанные)")
	}
	sb.WriteString("\n\n")

	if len(filtered) == 0 {
		sb.WriteString("Здесь пусто 🎉")
	}

	keyboard := b.getAlertFiltersKeyboard(unread)
	rows := keyboard.InlineKeyboard
	for _, alert := range filtered {
		marker := "🔵"
		if alert.IsRead {
			marker = "⚪"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n%s\n\n", marker, alert.Message, formatDate(alert.CreatedAt)))

		if !alert.IsRead {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ "+truncate(alert.Message, 30), "alert_read_"+alert.ID),
			))
		}
	}
	keyboard.InlineKeyboard = rows

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = keyboard
	b.tg.Send(msg)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

func (b *Bot) handleMarkAlert(chatID int64, id string) {
	token := b.token(chatID)
	if err := b.api.MarkAlertRead(context.Background(), token, id); err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	b.handleAlerts(chatID, service.AlertFilterAll)
}

// handleMarkAllAlerts отмечает уведомления по одному. При ошибке часть
// уже отмечена, пользователю сообщается сколько именно.
func (b *Bot) handleMarkAllAlerts(chatID int64) {
	token := b.token(chatID)

	alerts, err := b.api.ListAlerts(context.Background(), token)
	if err != nil {
		b.sendAPIError(chatID, err)
		return
	}

	marked, err := b.tracker.MarkAllAsRead(context.Background(), token, alerts)
	if err != nil {
		b.sendErrorMessage(chatID, fmt.Sprintf("Отмечено %d из %d, попробуйте ещё раз", marked, service.CountUnread(alerts)))
		b.handleAlerts(chatID, service.AlertFilterAll)
		return
	}

	b.sendText(chatID, fmt.Sprintf("Прочитано уведомлений: %d ✅", marked))
	b.handleAlerts(chatID, service.AlertFilterAll)
}
