package bot

import (
	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/service"
)

// Какой ввод бот ждёт от пользователя
const (
	awaitLoginEmail       = "login_email"
	awaitLoginPassword    = "login_password"
	awaitRegisterName     = "register_name"
	awaitRegisterEmail    = "register_email"
	awaitRegisterPassword = "register_password"
	awaitCategoryName     = "category_name"
	awaitServiceName      = "subscription_service"
	awaitAmount           = "subscription_amount"
	awaitBillingDate      = "subscription_date"
	awaitSearch           = "subscription_search"
	awaitProfileName      = "profile_name"
)

// chatState состояние диалога с одним чатом: текущий шаг и
// недособранные формы
type chatState struct {
	Awaiting string

	Login    api.LoginRequest
	Register api.RegisterRequest

	Category   api.CategoryRequest
	CategoryID string // непустой при редактировании

	Subscription   api.SubscriptionRequest
	SubscriptionID string // непустой при редактировании

	ListOptions service.ListOptions
}

func (b *Bot) state(chatID int64) *chatState {
	state, ok := b.states[chatID]
	if !ok {
		state = &chatState{}
		b.states[chatID] = state
	}
	return state
}

// resetFlow сбрасывает текущий диалог, фильтры списка подписок остаются
func (s *chatState) resetFlow() {
	s.Awaiting = ""
	s.Login = api.LoginRequest{}
	s.Register = api.RegisterRequest{}
	s.Category = api.CategoryRequest{}
	s.CategoryID = ""
	s.Subscription = api.SubscriptionRequest{}
	s.SubscriptionID = ""
}
