package handlers

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/utils"
)

const (
	maxQRCodeContent = 2048
	qrCodeSize       = 256
)

type UtilsHandler interface {
	QRCode(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewUtilsHandler(registry *prometheus.Registry, cfg *config.Config, log *zap.Logger) UtilsHandler {
	return &utilsHandler{
		handler:  handler{cfg: cfg, log: log},
		registry: registry,
	}
}

type utilsHandler struct {
	handler
	registry *prometheus.Registry
}

func (u *utilsHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/qrcode", u.QRCode)
	mux.Handle("GET /metrics", promhttp.HandlerFor(u.registry, promhttp.HandlerOpts{Registry: u.registry}))
	mux.Handle("GET /", http.FileServer(http.Dir(u.cfg.Web.Folder)))
}

// QRCode renders the raw request body, typically a deposit address, as a PNG.
func (u *utilsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	content, err := io.ReadAll(io.LimitReader(r.Body, maxQRCodeContent+1))
	if err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}
	switch {
	case len(content) == 0:
		errors.NewValidationError("No request body").Serialize(w)
		return
	case len(content) > maxQRCodeContent:
		errors.NewValidationError("QR code content is too long").Serialize(w)
		return
	}

	png, err := qrcode.Encode(string(content), qrcode.Medium, qrCodeSize)
	if err != nil {
		u.log.Error("encoding qr code", zap.Error(err))
		errors.NewFatalError(err).Serialize(w)
		return
	}

	utils.PNG(w, 200, png)
}
