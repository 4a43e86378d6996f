package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	gh "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/models"
	"github.com/2HgO/fixedfloat-go/services"
)

const AuthCookie = "auth-token"

type contextKey string

const userKey contextKey = "user"

type MiddleWareHandler interface {
	ValidateAccessToken(http.HandlerFunc) http.HandlerFunc
	RecoverAppError(http.Handler) http.Handler
	LogRequests(http.Handler) http.Handler
}

type middlewareHandler struct {
	accountService services.AccountService
	log            *zap.Logger
}

func NewMiddlewareHandler(account services.AccountService, log *zap.Logger) MiddleWareHandler {
	return &middlewareHandler{accountService: account, log: log}
}

// CurrentAccount returns the account attached by ValidateAccessToken.
func CurrentAccount(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(userKey).(*models.Account)
	return account, ok
}

// accessToken reads the session token from the auth cookie, falling back to
// a bearer authorization header.
func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AuthCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimPrefix(r.Header.Get("authorization"), "Bearer ")
}

func (m *middlewareHandler) ValidateAccessToken(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := accessToken(r)
		if token == "" {
			errors.NewInvalidTokenError().Serialize(w)
			return
		}

		res, err := m.accountService.GetAccountByAccessToken(r.Context(), token)
		if err != nil {
			errors.AsAppError(err).Serialize(w)
			return
		}

		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, res)))
	}
}

// RecoverAppError serializes errors.AppError panics raised by utils.Bind.
// Any other panic is passed on.
func (m *middlewareHandler) RecoverAppError(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			appErr, ok := rec.(errors.AppError)
			if !ok {
				panic(rec)
			}
			if appErr.Code >= http.StatusInternalServerError {
				m.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(appErr), zap.String("internal", appErr.Internal))
			}
			appErr.Serialize(w)
		}()
		h.ServeHTTP(w, r)
	})
}

func (m *middlewareHandler) LogRequests(h http.Handler) http.Handler {
	return gh.CustomLoggingHandler(io.Discard, h, func(_ io.Writer, params gh.LogFormatterParams) {
		m.log.Info("http request",
			zap.String("method", params.Request.Method),
			zap.String("path", params.URL.Path),
			zap.Int("status", params.StatusCode),
			zap.Int("size", params.Size),
			zap.Duration("duration", time.Since(params.TimeStamp)),
			zap.String("remote", params.Request.RemoteAddr),
		)
	})
}
