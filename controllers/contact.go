package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kesar-storefront/models"
	"kesar-storefront/utils"
	"kesar-storefront/validate"
)

// ContactController handles contact form submissions
type ContactController struct {
	Mailer utils.Mailer
}

// NewContactController creates a new ContactController
func NewContactController(mailer utils.Mailer) *ContactController {
	return &ContactController{
		Mailer: mailer,
	}
}

type contactResponse struct {
	Message     string            `json:"message,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	SubmitError string            `json:"submit_error,omitempty"`
	Values      map[string]string `json:"values,omitempty"`
}

func contactForm() *validate.Form {
	return validate.NewForm(
		validate.Field{Name: "name", Rules: []validate.Rule{
			validate.Required("Name is required"),
			validate.MinLength(2, "Name must be at least 2 characters"),
		}},
		validate.Field{Name: "email", Rules: []validate.Rule{
			validate.Required("Email is required"),
			validate.Email("Enter a valid email address"),
		}},
		validate.Field{Name: "subject", Rules: []validate.Rule{
			validate.MaxLength(200, "Subject must be at most 200 characters"),
		}},
		validate.Field{Name: "message", Rules: []validate.Rule{
			validate.Required("Message is required"),
			validate.MinLength(10, "Message must be at least 10 characters"),
		}},
	)
}

// Submit validates a contact message and hands it to the mailer. Validation
// failures come back per field with 422; a mailer failure comes back as a
// single submit-level error with the entered values preserved for retry.
func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	form := contactForm()
	form.SetValue("name", msg.Name)
	form.SetValue("email", msg.Email)
	form.SetValue("subject", msg.Subject)
	form.SetValue("message", msg.Message)

	err := form.Submit(r.Context(), func(ctx context.Context, values map[string]string) error {
		return cc.Mailer.SendContactEmail(ctx, models.ContactMessage{
			Name:    values["name"],
			Email:   values["email"],
			Subject: values["subject"],
			Message: values["message"],
		})
	})

	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, validate.ErrInvalid):
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(contactResponse{Errors: form.Errors()})
	case err != nil:
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(contactResponse{
			SubmitError: form.SubmitError(),
			Values:      form.Values(),
		})
	default:
		json.NewEncoder(w).Encode(contactResponse{
			Message: "Thank you for reaching out. We will get back to you soon.",
		})
	}
}
