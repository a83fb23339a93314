// Package contact handles the storefront contact form. Submissions are
// validated and acknowledged; delivery is delegated to the email sender.
package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/techsolutions/storefront/internal/common"
)

// chileanMobile accepts +56912345678, 912345678 and spaced variants.
var chileanMobile = regexp.MustCompile(`^(\+?56)?9\d{8}$`)

// Input is the contact form payload.
type Input struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,clphone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

// RegisterValidations installs the custom form rules on the validator.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("clphone", func(fl validator.FieldLevel) bool {
		cleaned := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
		return chileanMobile.MatchString(cleaned)
	})
}

// Handler wires the contact form to HTTP.
type Handler struct {
	Validate *validator.Validate
	Mailer   common.EmailSender
	Log      zerolog.Logger
}

// Submit validates the form and acknowledges receipt.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.WriteError(w, err)
		return
	}
	if h.Mailer != nil {
		subject := "Hemos recibido tu mensaje: " + payload.Subject
		body := fmt.Sprintf("<p>Hola %s,</p><p>Gracias por contactarnos. Te responderemos a la brevedad.</p>", payload.Name)
		if err := h.Mailer.Send(payload.Email, subject, body); err != nil {
			h.Log.Warn().Err(err).Msg("send contact acknowledgement")
		}
	}
	h.Log.Info().Str("subject", payload.Subject).Msg("contact form received")
	common.JSONData(w, http.StatusAccepted, map[string]bool{"received": true})
}

func (h *Handler) validate(in Input) error {
	v := h.Validate
	if v == nil {
		v = validator.New()
		if err := RegisterValidations(v); err != nil {
			return err
		}
	}
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return common.NewAppError("VALIDATION", "invalid contact form", http.StatusUnprocessableEntity, err).
			WithDetails(details)
	}
	return common.NewAppError("VALIDATION", "invalid contact form", http.StatusUnprocessableEntity, err)
}
