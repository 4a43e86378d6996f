package db

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
)

func DSN(cfg *config.DBConfig) string {
	c := mysql.Config{
		User:                 cfg.User,
		Passwd:               cfg.Password,
		Net:                  "tcp",
		Addr:                 cfg.Addr,
		DBName:               cfg.Name,
		ParseTime:            true,
		AllowNativePasswords: true,
	}
	return c.FormatDSN()
}

// GetDataDBConnection opens the account store. The handle is pinged when the
// app starts and closed when it stops.
func GetDataDBConnection(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*sql.DB, error) {
	dataDb, err := sql.Open("mysql", DSN(&cfg.DB))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := dataDb.PingContext(ctx); err != nil {
				return err
			}
			log.Info("connected to data db", zap.String("addr", cfg.DB.Addr), zap.String("name", cfg.DB.Name))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return dataDb.Close()
		},
	})

	return dataDb, nil
}
