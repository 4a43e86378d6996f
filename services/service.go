package services

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
)

type service struct {
	dataDB         *sql.DB
	gateway        Gateway
	accountService AccountService
	cfg            *config.Config
	log            *zap.Logger
}
