// Package bot реализует Telegram-интерфейс трекера подписок.
// Вся логика здесь клиентская: бот ходит в REST-бекенд от имени
// пользователя и хранит локально только сессию чата.
package bot

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/charts"
	"github.com/ivanoskov/subscription_bot/internal/service"
	"github.com/ivanoskov/subscription_bot/internal/session"
)

type Bot struct {
	tg       *tgbotapi.BotAPI
	api      *api.Client
	tracker  *service.Tracker
	sessions *session.Manager
	charts   *charts.ChartGenerator
	validate *validator.Validate
	log      *slog.Logger
	states   map[int64]*chatState // состояния диалогов по ID чата
}

func NewBot(token string, apiClient *api.Client, tracker *service.Tracker, sessions *session.Manager, chartGen *charts.ChartGenerator, log *slog.Logger) (*Bot, error) {
	tg, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		tg:       tg,
		api:      apiClient,
		tracker:  tracker,
		sessions: sessions,
		charts:   chartGen,
		validate: validator.New(),
		log:      log.With(slog.String("component", "bot")),
		states:   make(map[int64]*chatState),
	}, nil
}

// Start запускает бота в режиме long polling. Обновления обрабатываются
// последовательно, поэтому доступ к states не требует блокировок.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tg.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			b.log.Error("failed to handle update", slog.Any("error", err))
		}
	}

	return nil
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message != nil {
		return b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.handleStart(chatID)
	case "dashboard":
		if b.requireAuth(chatID) {
			b.handleDashboard(chatID)
		}
	case "subscriptions":
		if b.requireAuth(chatID) {
			b.handleSubscriptions(chatID)
		}
	case "reports":
		if b.requireAuth(chatID) {
			b.handleReports(chatID)
		}
	case "alerts":
		if b.requireAuth(chatID) {
			b.handleAlerts(chatID, service.AlertFilterAll)
		}
	case "logout":
		b.handleLogout(chatID)
	}

	return nil
}

func (b *Bot) handleStart(chatID int64) {
	sess := b.sessions.Get(chatID)
	if sess.Authorized() {
		b.sendMainMenu(chatID, "С возвращением, "+sess.User.Name+"! 👋")
		return
	}

	msg := tgbotapi.NewMessage(chatID,
		"Добро пожаловать в трекер подписок! 🔄\n\n"+
			"Я помогу следить за регулярными платежами:\n\n"+
			"• Подписки, категории и предстоящие списания\n"+
			"• Отчёты и графики трат\n"+
			"• Уведомления о приближающихся оплатах\n\n"+
			"Для начала войдите или зарегистрируйтесь:")
	msg.ReplyMarkup = b.getAuthKeyboard(sess.RememberedEmail)
	b.tg.Send(msg)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID
	data := callback.Data
	state := b.state(chatID)

	switch {
	case data == "action_login":
		b.startLogin(chatID, "")
	case data == "action_register":
		b.startRegister(chatID)
	case data == "login_remembered":
		b.startLogin(chatID, b.sessions.Get(chatID).RememberedEmail)
	case data == "action_logout":
		b.handleLogout(chatID)
	case data == "action_back":
		state.resetFlow()
		b.sendMainMenu(chatID, "Выберите действие:")

	case data == "action_dashboard":
		if b.requireAuth(chatID) {
			b.handleDashboard(chatID)
		}
	case data == "action_reports":
		if b.requireAuth(chatID) {
			b.handleReports(chatID)
		}
	case data == "action_profile":
		if b.requireAuth(chatID) {
			b.handleProfile(chatID)
		}

	case data == "action_subscriptions":
		if b.requireAuth(chatID) {
			b.handleSubscriptions(chatID)
		}
	case data == "action_new_subscription":
		if b.requireAuth(chatID) {
			b.startSubscriptionForm(chatID, "")
		}
	case strings.HasPrefix(data, "subs_filter_"):
		if b.requireAuth(chatID) {
			b.handleSubscriptionFilter(chatID, strings.TrimPrefix(data, "subs_filter_"))
		}
	case strings.HasPrefix(data, "subs_sort_"):
		if b.requireAuth(chatID) {
			b.handleSubscriptionSort(chatID, strings.TrimPrefix(data, "subs_sort_"))
		}
	case data == "subs_search":
		state.Awaiting = awaitSearch
		b.sendText(chatID, "Введите часть названия сервиса:")
	case strings.HasPrefix(data, "subfilcat_"):
		if b.requireAuth(chatID) {
			b.handleCategoryFilter(chatID, strings.TrimPrefix(data, "subfilcat_"))
		}
	case strings.HasPrefix(data, "subcat_"):
		b.handleSubscriptionCategory(chatID, strings.TrimPrefix(data, "subcat_"))
	case data == "cycle_monthly" || data == "cycle_yearly":
		b.handleSubscriptionCycle(chatID, strings.TrimPrefix(data, "cycle_"))
	case strings.HasPrefix(data, "sub_edit_"):
		if b.requireAuth(chatID) {
			b.startSubscriptionForm(chatID, strings.TrimPrefix(data, "sub_edit_"))
		}
	case strings.HasPrefix(data, "sub_charge_confirm_"):
		if b.requireAuth(chatID) {
			b.handleChargeConfirm(chatID, strings.TrimPrefix(data, "sub_charge_confirm_"))
		}
	case strings.HasPrefix(data, "sub_charge_"):
		if b.requireAuth(chatID) {
			b.handleChargePreview(chatID, strings.TrimPrefix(data, "sub_charge_"))
		}
	case strings.HasPrefix(data, "sub_cancel_confirm_"):
		if b.requireAuth(chatID) {
			b.handleCancelConfirm(chatID, strings.TrimPrefix(data, "sub_cancel_confirm_"))
		}
	case strings.HasPrefix(data, "sub_cancel_"):
		if b.requireAuth(chatID) {
			b.handleCancelPreview(chatID, strings.TrimPrefix(data, "sub_cancel_"))
		}
	case strings.HasPrefix(data, "sub_"):
		if b.requireAuth(chatID) {
			b.handleSubscriptionDetail(chatID, strings.TrimPrefix(data, "sub_"))
		}
	case strings.HasPrefix(data, "pay_charge_"):
		if b.requireAuth(chatID) {
			b.handlePayCharge(chatID, strings.TrimPrefix(data, "pay_charge_"))
		}

	case data == "action_categories":
		if b.requireAuth(chatID) {
			b.handleCategories(chatID)
		}
	case data == "action_new_category":
		state.resetFlow()
		state.Awaiting = awaitCategoryName
		b.sendText(chatID, "Введите название новой категории:")
	case strings.HasPrefix(data, "color_"):
		b.handleCategoryColor(chatID, strings.TrimPrefix(data, "color_"))
	case strings.HasPrefix(data, "cat_delete_confirm_"):
		if b.requireAuth(chatID) {
			b.handleCategoryDeleteConfirm(chatID, strings.TrimPrefix(data, "cat_delete_confirm_"))
		}
	case strings.HasPrefix(data, "cat_delete_"):
		if b.requireAuth(chatID) {
			b.handleCategoryDeletePreview(chatID, strings.TrimPrefix(data, "cat_delete_"))
		}
	case strings.HasPrefix(data, "cat_edit_"):
		if b.requireAuth(chatID) {
			b.startCategoryEdit(chatID, strings.TrimPrefix(data, "cat_edit_"))
		}

	case data == "action_alerts":
		if b.requireAuth(chatID) {
			b.handleAlerts(chatID, service.AlertFilterAll)
		}
	case data == "alerts_all":
		if b.requireAuth(chatID) {
			b.handleAlerts(chatID, service.AlertFilterAll)
		}
	case data == "alerts_unread":
		if b.requireAuth(chatID) {
			b.handleAlerts(chatID, service.AlertFilterUnread)
		}
	case data == "alerts_read":
		if b.requireAuth(chatID) {
			b.handleAlerts(chatID, service.AlertFilterRead)
		}
	case data == "alerts_mark_all":
		if b.requireAuth(chatID) {
			b.handleMarkAllAlerts(chatID)
		}
	case strings.HasPrefix(data, "alert_read_"):
		if b.requireAuth(chatID) {
			b.handleMarkAlert(chatID, strings.TrimPrefix(data, "alert_read_"))
		}

	case data == "profile_name":
		state.Awaiting = awaitProfileName
		b.sendText(chatID, "Введите новое имя:")
	case data == "profile_currency":
		msg := tgbotapi.NewMessage(chatID, "Выберите валюту:")
		msg.ReplyMarkup = b.getCurrencyKeyboard()
		b.tg.Send(msg)
	case data == "profile_notify":
		if b.requireAuth(chatID) {
			b.handleToggleNotifications(chatID)
		}
	case strings.HasPrefix(data, "currency_"):
		if b.requireAuth(chatID) {
			b.handleCurrencyChange(chatID, strings.TrimPrefix(data, "currency_"))
		}
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	callbackResponse := tgbotapi.NewCallback(callback.ID, "")
	b.tg.Request(callbackResponse)

	return nil
}

// handleMessage обрабатывает обычный текст по текущему шагу диалога
func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	state := b.state(chatID)
	text := strings.TrimSpace(message.Text)

	switch state.Awaiting {
	case awaitLoginEmail, awaitLoginPassword,
		awaitRegisterName, awaitRegisterEmail, awaitRegisterPassword:
		b.handleAuthInput(chatID, state, text)
	case awaitCategoryName:
		b.handleCategoryName(chatID, text)
	case awaitServiceName, awaitAmount, awaitBillingDate:
		b.handleSubscriptionInput(chatID, state, text)
	case awaitSearch:
		state.Awaiting = ""
		state.ListOptions.Search = text
		b.handleSubscriptions(chatID)
	case awaitProfileName:
		b.handleNameChange(chatID, text)
	default:
		if !b.requireAuth(chatID) {
			return nil
		}
		b.sendMainMenu(chatID, "Выберите действие:")
	}

	return nil
}

// requireAuth проверяет сессию чата. Без токена показывает экран входа
// и возвращает false.
func (b *Bot) requireAuth(chatID int64) bool {
	sess := b.sessions.Get(chatID)
	if sess.Authorized() {
		return true
	}

	msg := tgbotapi.NewMessage(chatID, "Сначала войдите в аккаунт 🔐")
	msg.ReplyMarkup = b.getAuthKeyboard(sess.RememberedEmail)
	b.tg.Send(msg)
	return false
}

// token возвращает токен текущей сессии чата
func (b *Bot) token(chatID int64) string {
	return b.sessions.Get(chatID).Token
}

// currency возвращает валюту из профиля сессии
func (b *Bot) currency(chatID int64) string {
	currency := b.sessions.Get(chatID).User.Currency
	if currency == "" {
		currency = "BRL"
	}
	return currency
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.tg.Send(msg)
}

func (b *Bot) sendMainMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.getMainKeyboard()
	b.tg.Send(msg)
}

func (b *Bot) sendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.tg.Send(msg)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.tg.Send(msg)
}

// sendAPIError переводит ошибку бекенда в сообщение чата. Просроченный
// токен сбрасывает сессию и возвращает пользователя на экран входа.
func (b *Bot) sendAPIError(chatID int64, err error) {
	if api.IsUnauthorized(err) {
		if logoutErr := b.sessions.Logout(chatID); logoutErr != nil {
			b.log.Error("failed to drop session", slog.Any("error", logoutErr))
		}
		b.state(chatID).resetFlow()
		msg := tgbotapi.NewMessage(chatID, "Сессия истекла, войдите заново 🔐")
		msg.ReplyMarkup = b.getAuthKeyboard(b.sessions.Get(chatID).RememberedEmail)
		b.tg.Send(msg)
		return
	}

	b.log.Error("api request failed", slog.Any("error", err))
	b.sendErrorMessage(chatID, apiErrorText(err))
}

// apiErrorText текст ошибки бекенда или общая заглушка, если бекенд
// не прислал сообщение
func apiErrorText(err error) string {
	if text := api.UserMessage(err); text != "" {
		return text
	}
	return "Что-то пошло не так, попробуйте позже"
}
