package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/utils"
)

const generatedPasswordLength = 12

// CreateEmployee provisions an account for the site with a generated
// username and password, then mails the credentials to the new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(WorkSiteCtx).(*domain.WorkSite)

	var req struct {
		FullName          string `json:"fullName" validate:"required"`
		Email             string `json:"email" validate:"required,email"`
		Role              string `json:"role" validate:"required,oneof=admin manager employee"`
		DefaultPositionID *int64 `json:"defaultPositionID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(generatedPasswordLength)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	emp := &domain.Employee{
		SiteID:            site.ID,
		Username:          utils.GenerateUsernameFromFullName(req.FullName),
		PasswordHash:      string(passwordHash),
		FullName:          req.FullName,
		Email:             req.Email,
		Role:              domain.Role(req.Role),
		DefaultPositionID: req.DefaultPositionID,
		Locale:            "en",
		IsActive:          true,
	}

	if err := h.repository.CreateEmployee(emp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "employees_username_key":
				// the generated username collided, the odds make a retry cheap
				h.errorResponse(w, r, "username collision, please retry")
				return
			case "employees_email_key":
				h.errorResponse(w, r, "email is already in use")
				return
			}
		}
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_user",
		To:   emp.Email,
		Data: domain.NewAccountMailData{
			FullName: emp.FullName,
			Username: emp.Username,
			Password: password,
		},
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()
	err = h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee created", emp)
}
