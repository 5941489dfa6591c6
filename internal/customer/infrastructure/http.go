package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-crm/internal/customer/application"
	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// CustomerHTTPHandler expõe o slice de clientes via HTTP, traduzindo cada
// variante do Outcome para o status correspondente.
type CustomerHTTPHandler struct {
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.RegisterCustomerData], application.RegisterCustomerData]
	queryBus   pkgApp.QueryBus[pkgDomain.Query[application.FindCustomerData], application.FindCustomerData, []domain.CustomerDocument]
}

func NewCustomerHTTPHandler(
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.RegisterCustomerData], application.RegisterCustomerData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.FindCustomerData], application.FindCustomerData, []domain.CustomerDocument],
) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
	}
}

func (h *CustomerHTTPHandler) HandleRegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var data application.RegisterCustomerData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	command := application.NewRegisterCustomerCommand(data)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	outcome, err := h.commandBus.Dispatch(ctx, command)
	if err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeOutcome(w, outcome)
}

func (h *CustomerHTTPHandler) HandleFindCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	query := application.NewFindCustomerQuery(application.FindCustomerData{
		CustomerID: customerID,
	})

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	docs, err := h.queryBus.Dispatch(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			handleError(w, err.Error(), http.StatusNotFound)
			return
		}
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, docs[0])
}

func (h *CustomerHTTPHandler) HandleListCustomers(w http.ResponseWriter, r *http.Request) {
	query := application.NewFindCustomerQuery(application.FindCustomerData{})

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	docs, err := h.queryBus.Dispatch(ctx, query)
	if err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []domain.CustomerDocument{}
	}

	writeJSON(w, http.StatusOK, docs)
}

func (h *CustomerHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/customers", h.HandleRegisterCustomer)
	router.Get("/customers", h.HandleListCustomers)
	router.Get("/customers/{customerID}", h.HandleFindCustomer)
}

func writeOutcome(w http.ResponseWriter, outcome pkgApp.Outcome) {
	switch {
	case outcome.IsSuccess():
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":      outcome.Value,
			"message": outcome.Message,
		})
	case outcome.IsValidationFailure():
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": outcome.FieldErrors,
		})
	default:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": outcome.BusinessErrors,
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
