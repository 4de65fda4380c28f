package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder - базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// Границы суммы заказа: NUMERIC(10,2) - 8 цифр целой части и 2 дробной.
var (
	minAmount      = decimal.RequireFromString("0.01")
	amountIntLimit = decimal.New(1, 8)
)

const amountScale = 2

// tagPGText - строка, которую примет колонка TEXT/VARCHAR: валидный UTF-8 без NUL.
const tagPGText = "pgtext"

// FieldErrors - ошибка валидации с перечнем проблемных полей.
// errors.Is(err, ErrInvalidOrder) == true.
type FieldErrors struct {
	Details []string
}

func (e *FieldErrors) Error() string {
	return ErrInvalidOrder.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *FieldErrors) Unwrap() error { return ErrInvalidOrder }

// OrderValidator - валидация черновика заказа поверх go-playground/validator.
type OrderValidator struct {
	v *validator.Validate
}

// NewOrderValidator - конструктор OrderValidator.
// Имена полей в ошибках берутся из json-тегов.
func NewOrderValidator() *OrderValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// ошибка возможна только для пустого имени тега
	_ = v.RegisterValidation(tagPGText, func(fl validator.FieldLevel) bool {
		return isPGText(fl.Field().String())
	})
	return &OrderValidator{v: v}
}

// Normalize - обрезает пробелы по краям текстовых полей.
func Normalize(draft *domain.OrderDraft) {
	if draft == nil {
		return
	}
	draft.CustomerName = strings.TrimSpace(draft.CustomerName)
	draft.Description = strings.TrimSpace(draft.Description)
}

// Validate - проверяет поля черновика; ожидает уже нормализованный ввод.
func (v *OrderValidator) Validate(ctx context.Context, draft *domain.OrderDraft) error {
	if draft == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}

	var details []string
	if err := v.v.StructCtx(ctx, draft); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
		}
		for _, fe := range fieldErrs {
			details = append(details, describeField(fe))
		}
	}
	details = append(details, validateAmount(draft.Amount)...)

	if len(details) > 0 {
		return &FieldErrors{Details: details}
	}
	return nil
}

// describeField - человекочитаемое описание ошибки поля.
func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: обязательное поле", fe.Field())
	case "max":
		return fmt.Sprintf("%s: не более %s символов", fe.Field(), fe.Param())
	case tagPGText:
		return fmt.Sprintf("%s: недопустимые символы (NUL или неверный UTF-8)", fe.Field())
	default:
		return fmt.Sprintf("%s: не прошло проверку %q", fe.Field(), fe.Tag())
	}
}

func isPGText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// Валидация суммы
func validateAmount(amount decimal.Decimal) []string {
	var details []string
	if amount.LessThan(minAmount) {
		details = append(details, "amount: должна быть не меньше 0.01")
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		details = append(details, "amount: не более 2 знаков после запятой")
	}
	if amount.Abs().GreaterThanOrEqual(amountIntLimit) {
		details = append(details, "amount: не более 8 цифр в целой части")
	}
	return details
}
