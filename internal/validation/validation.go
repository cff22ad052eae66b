// Package validation checks inbound requests for required fields and
// closed-enum values before they reach the registry or the message log.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/presencechat/internal/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return core.Kind(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

type participant struct {
	Name string `validate:"required,notblank"`
}

type message struct {
	From string `validate:"required,notblank"`
	To   string `validate:"required,notblank"`
	Text string `validate:"required"`
	Kind string `validate:"required,kind"`
}

type chatLine struct {
	Kind string `validate:"required,oneof=message private_message"`
}

type limit struct {
	Value int `validate:"gt=0"`
}

// ParticipantName rejects an empty or blank participant name.
func ParticipantName(name string) error {
	return check(participant{Name: name})
}

// Message checks the required fields and kind of msg.
func Message(msg core.Message) error {
	return check(message{
		From: msg.From,
		To:   msg.To,
		Text: msg.Text,
		Kind: string(msg.Kind),
	})
}

// ChatKind accepts only kinds a participant may post directly.
func ChatKind(kind core.Kind) error {
	return check(chatLine{Kind: string(kind)})
}

// Limit accepts an absent limit or a positive one.
func Limit(n *int) error {
	if n == nil {
		return nil
	}
	return check(limit{Value: *n})
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return core.Invalid("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return core.Invalid("%v", err)
}
