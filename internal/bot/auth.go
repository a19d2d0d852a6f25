package bot

import (
	"context"
	"log/slog"

	"github.com/ivanoskov/subscription_bot/internal/api"
)

// startLogin начинает диалог входа. Непустой email пропускает первый шаг,
// так работает кнопка "Войти как ...".
func (b *Bot) startLogin(chatID int64, email string) {
	state := b.state(chatID)
	state.resetFlow()

	if email != "" {
		state.Login.Email = email
		state.Awaiting = awaitLoginPassword
		b.sendText(chatID, "Введите пароль для "+email+":")
		return
	}

	state.Awaiting = awaitLoginEmail
	b.sendText(chatID, "Введите email:")
}

func (b *Bot) startRegister(chatID int64) {
	state := b.state(chatID)
	state.resetFlow()
	state.Awaiting = awaitRegisterName
	b.sendText(chatID, "Как вас зовут?")
}

// handleAuthInput ведёт пользователя по шагам входа или регистрации
func (b *Bot) handleAuthInput(chatID int64, state *chatState, text string) {
	switch state.Awaiting {
	case awaitLoginEmail:
		state.Login.Email = text
		state.Awaiting = awaitLoginPassword
		b.sendText(chatID, "Введите пароль:")

	case awaitLoginPassword:
		state.Login.Password = text
		b.doLogin(chatID, state)

	case awaitRegisterName:
		state.Register.Name = text
		state.Awaiting = awaitRegisterEmail
		b.sendText(chatID, "Введите email:")

	case awaitRegisterEmail:
		state.Register.Email = text
		state.Awaiting = awaitRegisterPassword
		b.sendText(chatID, "Придумайте пароль (минимум 6 символов):")

	case awaitRegisterPassword:
		state.Register.Password = text
		b.doRegister(chatID, state)
	}
}

func (b *Bot) doLogin(chatID int64, state *chatState) {
	if err := b.validate.Struct(state.Login); err != nil {
		state.resetFlow()
		b.sendErrorMessage(chatID, validationMessage(err))
		b.startLogin(chatID, "")
		return
	}

	auth, err := b.api.Login(context.Background(), state.Login)
	if err != nil {
		state.resetFlow()
		if api.IsUnauthorized(err) {
			b.sendErrorMessage(chatID, "Неверный email или пароль")
		} else {
			b.sendErrorMessage(chatID, apiErrorText(err))
		}
		b.sendKeyboard(chatID, "Попробуйте ещё раз:", b.getAuthKeyboard(b.sessions.Get(chatID).RememberedEmail))
		return
	}

	b.finishAuth(chatID, state, auth)
}

func (b *Bot) doRegister(chatID int64, state *chatState) {
	if err := b.validate.Struct(state.Register); err != nil {
		state.resetFlow()
		b.sendErrorMessage(chatID, validationMessage(err))
		b.startRegister(chatID)
		return
	}

	auth, err := b.api.Register(context.Background(), state.Register)
	if err != nil {
		state.resetFlow()
		b.sendErrorMessage(chatID, apiErrorText(err))
		return
	}

	b.finishAuth(chatID, state, auth)
}

func (b *Bot) finishAuth(chatID int64, state *chatState, auth *api.AuthResponse) {
	state.resetFlow()

	// Email запоминается всегда: кнопка быстрого входа переживает выход
	if err := b.sessions.Login(chatID, auth.Token, auth.User, true); err != nil {
		b.log.Error("failed to persist session", slog.Any("error", err))
	}

	b.sendMainMenu(chatID, "Готово, "+auth.User.Name+"! ✅\nВыберите действие:")
}

func (b *Bot) handleLogout(chatID int64) {
	b.state(chatID).resetFlow()
	if err := b.sessions.Logout(chatID); err != nil {
		b.log.Error("failed to persist session", slog.Any("error", err))
	}

	sess := b.sessions.Get(chatID)
	b.sendKeyboard(chatID, "Вы вышли из аккаунта 👋", b.getAuthKeyboard(sess.RememberedEmail))
}
