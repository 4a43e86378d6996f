package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/services"
)

type handler struct {
	accountService  services.AccountService
	exchangeService services.ExchangeService
	middlewares     MiddleWareHandler
	cfg             *config.Config

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
