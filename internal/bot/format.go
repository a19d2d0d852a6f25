package bot

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"RUB": "₽",
}

// Валюты, предлагаемые в настройках профиля
var supportedCurrencies = []string{"BRL", "USD", "EUR", "RUB"}

// formatMoney форматирует сумму в валюте пользователя
func formatMoney(value float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return fmt.Sprintf("%s %.2f", symbol, value)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// parseUserDate разбирает дату из чата, принимает оба привычных формата
func parseUserDate(text string) (time.Time, error) {
	if t, err := time.Parse("02.01.2006", text); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", text)
}

// Человекочитаемые названия полей форм
var fieldNames = map[string]string{
	"Email":           "email",
	"Password":        "пароль",
	"Name":            "название",
	"Color":           "цвет",
	"CategoryID":      "категория",
	"ServiceName":     "название сервиса",
	"Amount":          "сумма",
	"BillingCycle":    "цикл оплаты",
	"NextBillingDate": "дата списания",
	"Currency":        "валюта",
}

// validationMessage переводит первую ошибку валидации в сообщение для чата
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Проверьте введённые данные"
	}

	fieldErr := errs[0]
	field, ok := fieldNames[fieldErr.Field()]
	if !ok {
		field = fieldErr.Field()
	}

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("Поле «%s» обязательно", field)
	case "email":
		return "Неверный формат email"
	case "min":
		return fmt.Sprintf("Поле «%s» слишком короткое (минимум %s)", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("Поле «%s» должно быть больше %s", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("Недопустимое значение поля «%s»", field)
	case "datetime":
		return "Неверный формат даты"
	case "hexcolor":
		return "Цвет должен быть hex-строкой, например #3B82F6"
	case "len":
		return fmt.Sprintf("Поле «%s» должно быть длиной %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("Поле «%s» заполнено неверно", field)
	}
}

func billingCycleLabel(cycle string) string {
	if cycle == model.BillingCycleYearly {
		return "Годовая"
	}
	return "Месячная"
}

func statusLabel(status string) string {
	if status == model.SubscriptionStatusCanceled {
		return "Отменена"
	}
	return "Активна"
}
