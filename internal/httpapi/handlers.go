package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/DoyleJ11/gift-exchange/internal/exchange"
	"github.com/DoyleJ11/gift-exchange/internal/i18n"
	"github.com/DoyleJ11/gift-exchange/internal/session"
	"github.com/DoyleJ11/gift-exchange/internal/share"
	"github.com/DoyleJ11/gift-exchange/internal/token"
	"github.com/DoyleJ11/gift-exchange/internal/types"
)

// API carries what every handler needs. Handlers hold no state of their own.
type API struct {
	Log             *zap.Logger
	Engine          *exchange.Engine
	Store           *session.Store
	Bundle          *i18n.Bundle
	BaseURL         string
	MaxParticipants int

	validate *validator.Validate
}

func (a *API) translator(r *http.Request) i18n.Translator {
	return a.Bundle.For(i18n.LanguageFrom(r.Context()))
}

func (a *API) CreateExchange(w http.ResponseWriter, r *http.Request) {
	tr := a.translator(r)

	var req types.CreateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, tr.T("errors.badRequest", nil))
		return
	}
	if err := a.validate.Struct(req); err != nil || len(req.Names) > a.MaxParticipants {
		writeError(w, http.StatusBadRequest, tr.T("errors.badRequest", nil))
		return
	}

	participants, err := a.Engine.Assign(req.Names)
	if errors.Is(err, exchange.ErrInsufficientParticipants) {
		writeError(w, http.StatusUnprocessableEntity, tr.T("home.errorAtLeast2", nil))
		return
	}
	if err != nil {
		a.Log.Error("assign failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, tr.T("home.errorOccurred", nil))
		return
	}

	reply := make(chan *session.Entry, 1)
	entry, err := a.ask(r, session.Create{
		Entry: session.Entry{
			Participants:  participants,
			CustomMessage: req.Message,
			Language:      tr.Language(),
		},
		Reply: reply,
	}, reply)
	if err != nil {
		a.unavailable(w, r, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusInternalServerError, tr.T("errors.internal", nil))
		return
	}

	a.Log.Info("exchange created", zap.String("code", entry.Code), zap.Int("participants", len(participants)))
	writeJSON(w, http.StatusCreated, a.exchangeResponse(entry))
}

func (a *API) GetExchange(w http.ResponseWriter, r *http.Request) {
	reply := make(chan *session.Entry, 1)
	entry, err := a.ask(r, session.Get{Code: chi.URLParam(r, "code"), Reply: reply}, reply)
	if err != nil {
		a.unavailable(w, r, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, a.translator(r).T("results.notFound", nil))
		return
	}
	writeJSON(w, http.StatusOK, a.exchangeResponse(entry))
}

func (a *API) SetMessage(w http.ResponseWriter, r *http.Request) {
	tr := a.translator(r)

	var req types.SetMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, tr.T("errors.badRequest", nil))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, tr.T("errors.badRequest", nil))
		return
	}

	reply := make(chan *session.Entry, 1)
	entry, err := a.ask(r, session.SetMessage{Code: chi.URLParam(r, "code"), Message: req.Message, Reply: reply}, reply)
	if err != nil {
		a.unavailable(w, r, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, tr.T("results.notFound", nil))
		return
	}
	writeJSON(w, http.StatusOK, a.exchangeResponse(entry))
}

func (a *API) DeleteExchange(w http.ResponseWriter, r *http.Request) {
	if err := a.send(r, session.Remove{Code: chi.URLParam(r, "code")}); err != nil {
		a.unavailable(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) Reveal(w http.ResponseWriter, r *http.Request) {
	tr := a.translator(r)

	pair, err := token.Decode(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, http.StatusNotFound, tr.T("reveal.invalidLink", nil))
		return
	}
	writeJSON(w, http.StatusOK, types.RevealResponse{
		Name:       pair.Name,
		AssignedTo: pair.AssignedTo,
		Title:      tr.T("reveal.title", map[string]string{"name": pair.Name}),
	})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Share messages use the language the draw was made in, not the viewer's.
func (a *API) exchangeResponse(e *session.Entry) types.ExchangeResponse {
	tr := a.Bundle.For(e.Language)
	return types.ExchangeResponse{
		Code:     e.Code,
		Language: string(e.Language),
		Message:  e.CustomMessage,
		Participants: lo.Map(e.Participants, func(p exchange.Participant, _ int) types.ParticipantLink {
			link := share.RevealURL(a.BaseURL, p.Token)
			return types.ParticipantLink{
				Name:       p.Name,
				AssignedTo: p.AssignedTo,
				Token:      p.Token,
				RevealURL:  link,
				ShareURL:   share.WhatsAppURL(share.Message(tr, e.CustomMessage, link)),
			}
		}),
	}
}

var errStoreStopped = errors.New("session store stopped")

// send gives up when the request is cancelled or the store has stopped,
// so a handler never blocks on a store that will not answer.
func (a *API) send(r *http.Request, msg session.StoreMsg) error {
	select {
	case <-a.Store.Done():
		return errStoreStopped
	default:
	}

	select {
	case a.Store.Inbox() <- msg:
		return nil
	case <-r.Context().Done():
		return r.Context().Err()
	case <-a.Store.Done():
		return errStoreStopped
	}
}

func (a *API) ask(r *http.Request, msg session.StoreMsg, reply <-chan *session.Entry) (*session.Entry, error) {
	if err := a.send(r, msg); err != nil {
		return nil, err
	}
	select {
	case e := <-reply:
		return e, nil
	case <-r.Context().Done():
		return nil, r.Context().Err()
	case <-a.Store.Done():
		return nil, errStoreStopped
	}
}

func (a *API) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	a.Log.Warn("session store unavailable", zap.Error(err))
	writeError(w, http.StatusServiceUnavailable, a.translator(r).T("errors.internal", nil))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
