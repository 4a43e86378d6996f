package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/services"
	"github.com/2HgO/fixedfloat-go/types/requests"
	"github.com/2HgO/fixedfloat-go/utils"
)

type ExchangeHandler interface {
	ListCurrencies(w http.ResponseWriter, r *http.Request)
	SupportedCurrencies(w http.ResponseWriter, r *http.Request)
	ExchangeRate(w http.ResponseWriter, r *http.Request)
	CreateOrder(w http.ResponseWriter, r *http.Request)
	OrderDetails(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewExchangeHandler(exchangeService services.ExchangeService, middlewares MiddleWareHandler, log *zap.Logger) ExchangeHandler {
	return &exchangeHandler{
		handler: handler{exchangeService: exchangeService, middlewares: middlewares, log: log},
	}
}

type exchangeHandler struct {
	handler
}

func (e *exchangeHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/currencies", e.ListCurrencies)
	mux.HandleFunc("GET /api/supported-currencies", e.SupportedCurrencies)
	mux.HandleFunc("POST /api/exchange-rate", e.ExchangeRate)
	mux.HandleFunc("POST /api/create-order", e.CreateOrder)
	mux.HandleFunc("POST /api/order-details", e.OrderDetails)
	mux.HandleFunc("GET /api/order-details", e.OrderDetails)
}

func (e *exchangeHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	res, err := e.exchangeService.ListCurrencies(r.Context())
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (e *exchangeHandler) SupportedCurrencies(w http.ResponseWriter, r *http.Request) {
	res, err := e.exchangeService.SupportedCurrencies(r.Context())
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (e *exchangeHandler) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.ExchangeRateRequest](r)

	res, err := e.exchangeService.ExchangeRate(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (e *exchangeHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.CreateOrderRequest](r)

	res, err := e.exchangeService.CreateOrder(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}

func (e *exchangeHandler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.OrderDetailsRequest](r)

	res, err := e.exchangeService.OrderDetails(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}
