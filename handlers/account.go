package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/models"
	"github.com/2HgO/fixedfloat-go/services"
	"github.com/2HgO/fixedfloat-go/types/requests"
	"github.com/2HgO/fixedfloat-go/types/responses"
	"github.com/2HgO/fixedfloat-go/utils"
)

type AccountHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logoff(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewAccountHandler(accountService services.AccountService, middlewares MiddleWareHandler, cfg *config.Config, log *zap.Logger) AccountHandler {
	return &accountHandler{
		handler: handler{accountService: accountService, middlewares: middlewares, cfg: cfg, log: log},
	}
}

type accountHandler struct {
	handler
}

func (a *accountHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/signup", a.Signup)
	mux.HandleFunc("POST /api/login", a.Login)
	mux.HandleFunc("POST /api/logoff", a.Logoff)

	mux.HandleFunc("GET /api/me", utils.Middleware(a.Me, a.middlewares.ValidateAccessToken))
}

func (a *accountHandler) setTokenCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   a.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *accountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.SignupRequest](r)

	res, err := a.accountService.Signup(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}

func (a *accountHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.LoginRequest](r)

	res, err := a.accountService.Login(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	a.setTokenCookie(w, res.Data.Token, res.Data.ExpiresAt)
	utils.JSON(w, 200, res)
}

func (a *accountHandler) Logoff(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.LogoffRequest](r)

	if req.Logoff {
		if token := accessToken(r); token != "" {
			if err := a.accountService.Logoff(r.Context(), token); err != nil {
				errors.AsAppError(err).Serialize(w)
				return
			}
		}
		a.setTokenCookie(w, "", time.Unix(0, 0))
	}

	utils.JSON(w, 200, &responses.Response[*responses.LogoffResponseData]{
		Status: "successful",
		Data:   &responses.LogoffResponseData{LoggedOff: req.Logoff},
	})
}

func (a *accountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := CurrentAccount(r.Context())
	if !ok {
		errors.NewInvalidTokenError().Serialize(w)
		return
	}

	utils.JSON(w, 200, &responses.Response[*models.Account]{
		Status: "successful",
		Data:   account,
	})
}
