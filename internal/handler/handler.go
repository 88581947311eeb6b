package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/JohWeak/shifts-app-sub005/internal/config"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/engine"
	"github.com/JohWeak/shifts-app-sub005/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	engine      *engine.Engine
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eng *engine.Engine, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		engine:      eng,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a logged-in employee
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/me", h.Me)

		r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/sites", h.CreateWorkSite)

		r.Route("/sites/{siteID}", func(r chi.Router) {
			r.Use(h.workSite)
			r.Get("/", h.GetWorkSite)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/employees", h.CreateEmployee)

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.ListSchedules)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/generate", h.GenerateSchedule)

				r.Route("/{scheduleID}", func(r chi.Router) {
					r.Use(h.schedule)
					r.Get("/", h.GetSchedule)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/publish", h.PublishSchedule)
				})
			})
		})
	})
}
