package services

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/fixedfloat"
	"github.com/2HgO/fixedfloat-go/models"
	"github.com/2HgO/fixedfloat-go/types/requests"
	"github.com/2HgO/fixedfloat-go/types/responses"
)

// Gateway is the exchange API. *fixedfloat.Client satisfies it.
type Gateway interface {
	ListCurrencies(ctx context.Context) ([]fixedfloat.Currency, error)
	Quote(ctx context.Context, req fixedfloat.QuoteRequest) (*fixedfloat.Quote, error)
	CreateOrder(ctx context.Context, req fixedfloat.CreateOrderRequest) (*fixedfloat.Order, error)
	OrderDetails(ctx context.Context, id, token string) (*fixedfloat.Order, error)
}

type ExchangeService interface {
	ListCurrencies(context.Context) (*responses.Response[[]fixedfloat.Currency], error)
	SupportedCurrencies(context.Context) (*responses.Response[[]*models.SupportedCurrency], error)
	ExchangeRate(context.Context, *requests.ExchangeRateRequest) (*responses.Response[*fixedfloat.Quote], error)
	CreateOrder(context.Context, *requests.CreateOrderRequest) (*responses.Response[*responses.OrderResponseData], error)
	OrderDetails(context.Context, *requests.OrderDetailsRequest) (*responses.Response[*responses.OrderResponseData], error)
}

func NewExchangeService(gateway Gateway, cfg *config.Config, log *zap.Logger) ExchangeService {
	return &exchangeService{
		service: service{
			gateway: gateway,
			cfg:     cfg,
			log:     log,
		},
		supported: cfg.Exchange.Supported(),
	}
}

type exchangeService struct {
	service
	supported []string
}

func (e *exchangeService) ListCurrencies(ctx context.Context) (*responses.Response[[]fixedfloat.Currency], error) {
	currencies, err := e.gateway.ListCurrencies(ctx)
	if err != nil {
		e.log.Error("listing exchange currencies", zap.Error(err), zap.Bool("retryable", fixedfloat.IsRetryable(err)))
		return nil, errors.HandleGatewayError(err)
	}

	return &responses.Response[[]fixedfloat.Currency]{
		Status: "successful",
		Data:   currencies,
	}, nil
}

func (e *exchangeService) SupportedCurrencies(ctx context.Context) (*responses.Response[[]*models.SupportedCurrency], error) {
	res := make([]*models.SupportedCurrency, 0, len(e.supported))
	for _, code := range e.supported {
		if ccy, ok := models.KnownCurrencies[code]; ok {
			res = append(res, ccy)
			continue
		}
		res = append(res, &models.SupportedCurrency{Code: code})
	}

	return &responses.Response[[]*models.SupportedCurrency]{
		Status: "successful",
		Data:   res,
	}, nil
}

func (e *exchangeService) ExchangeRate(ctx context.Context, req *requests.ExchangeRateRequest) (*responses.Response[*fixedfloat.Quote], error) {
	ccy, err := e.supportedCurrency(req.Ccy)
	if err != nil {
		return nil, err
	}

	direction := fixedfloat.Direction(req.Direction)
	from, to := e.pair(ccy, direction)
	quote, err := e.gateway.Quote(ctx, fixedfloat.QuoteRequest{
		Type:      fixedfloat.OrderType(e.cfg.Exchange.OrderType),
		FromCcy:   from,
		ToCcy:     to,
		Direction: direction,
		Amount:    req.Amount,
	})
	if err != nil {
		e.log.Error("fetching exchange rate", zap.Error(err), zap.String("from", from), zap.String("to", to), zap.String("direction", req.Direction))
		return nil, errors.HandleGatewayError(err)
	}

	return &responses.Response[*fixedfloat.Quote]{
		Status: "successful",
		Data:   quote,
	}, nil
}

func (e *exchangeService) CreateOrder(ctx context.Context, req *requests.CreateOrderRequest) (*responses.Response[*responses.OrderResponseData], error) {
	ccy, err := e.supportedCurrency(req.Ccy)
	if err != nil {
		return nil, err
	}

	direction := fixedfloat.Direction(req.Direction)
	from, to := e.pair(ccy, direction)
	order, err := e.gateway.CreateOrder(ctx, fixedfloat.CreateOrderRequest{
		Type:      fixedfloat.OrderType(e.cfg.Exchange.OrderType),
		FromCcy:   from,
		ToCcy:     to,
		Direction: direction,
		Amount:    req.Amount,
		ToAddress: req.ToAddress,
		Tag:       req.Tag,
	})
	if err != nil {
		e.log.Error("creating exchange order", zap.Error(err), zap.String("from", from), zap.String("to", to), zap.String("direction", req.Direction))
		return nil, errors.HandleGatewayError(err)
	}
	e.log.Info("exchange order created", zap.String("id", order.ID), zap.Stringer("status", order.Status))

	return &responses.Response[*responses.OrderResponseData]{
		Status:  "successful",
		Message: "Order created successfully",
		Data:    responses.NewOrderResponseData(order),
	}, nil
}

func (e *exchangeService) OrderDetails(ctx context.Context, req *requests.OrderDetailsRequest) (*responses.Response[*responses.OrderResponseData], error) {
	order, err := e.gateway.OrderDetails(ctx, req.ID, req.Token)
	if err != nil {
		e.log.Error("fetching exchange order", zap.Error(err), zap.String("id", req.ID))
		return nil, errors.HandleGatewayError(err)
	}
	if !order.Status.Known() {
		e.log.Warn("exchange returned an unknown order status", zap.String("id", order.ID), zap.Stringer("status", order.Status))
	}

	return &responses.Response[*responses.OrderResponseData]{
		Status: "successful",
		Data:   responses.NewOrderResponseData(order),
	}, nil
}

// pair builds the exchange legs for ccy against the settlement currency. With
// direction "from" the caller sends ccy; with "to" the caller receives it.
// Either way the fixed amount is denominated in ccy.
func (e *exchangeService) pair(ccy string, direction fixedfloat.Direction) (from, to string) {
	settlement := strings.ToUpper(e.cfg.Exchange.SettlementCurrency)
	if direction == fixedfloat.DirectionTo {
		return settlement, ccy
	}
	return ccy, settlement
}

func (e *exchangeService) supportedCurrency(ccy string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(ccy))
	if !slices.Contains(e.supported, code) {
		return "", errors.NewValidationError("ccy must be one of the supported currencies: " + strings.Join(e.supported, ", "))
	}
	return code, nil
}
