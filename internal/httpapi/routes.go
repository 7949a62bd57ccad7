package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

func SetupRoutes(a *API) http.Handler {
	if a.validate == nil {
		a.validate = validator.New()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(AccessLog(a.Log))
	r.Use(middleware.Recoverer)
	r.Use(Language)

	r.Get("/healthz", Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/exchanges", a.CreateExchange)
		r.Get("/exchanges/{code}", a.GetExchange)
		r.Put("/exchanges/{code}/message", a.SetMessage)
		r.Delete("/exchanges/{code}", a.DeleteExchange)
		r.Get("/reveal/{token}", a.Reveal)
	})
	return r
}
