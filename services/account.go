package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/models"
	"github.com/2HgO/fixedfloat-go/types/requests"
	"github.com/2HgO/fixedfloat-go/types/responses"
)

type AccountService interface {
	Signup(context.Context, *requests.SignupRequest) (*responses.Response[*models.Account], error)
	Login(context.Context, *requests.LoginRequest) (*responses.Response[*responses.LoginResponseData], error)
	Logoff(ctx context.Context, token string) error
	GetAccountByAccessToken(ctx context.Context, token string) (*models.Account, error)
	PurgeExpiredTokens(context.Context) (int64, error)
}

func NewAccountService(dataDatabase *sql.DB, cfg *config.Config, log *zap.Logger) (AccountService, error) {
	pepper, err := cfg.Auth.PepperBytes()
	if err != nil {
		return nil, err
	}
	return &accountService{
		service: service{
			dataDB: dataDatabase,
			cfg:    cfg,
			log:    log,
		},
		pepper: pepper,
	}, nil
}

type accountService struct {
	service
	pepper []byte
}

// peppered keys the clear password with the server secret before bcrypt sees
// it. The hex digest stays under bcrypt's 72 byte input limit.
func (a *accountService) peppered(pwd string) []byte {
	mac := hmac.New(sha256.New, a.pepper)
	mac.Write([]byte(pwd))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}

func normalizeUsername(username string) string {
	return cases.Lower(language.English).String(username)
}

func (a *accountService) Signup(ctx context.Context, req *requests.SignupRequest) (*responses.Response[*models.Account], error) {
	now := time.Now()
	account := &models.Account{
		ID:        uuid.NewString(),
		Username:  normalizeUsername(req.Username),
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	var existing string
	err := sq.
		Select("id").
		From("accounts").
		Where(sq.Eq{"username": account.Username}).
		Limit(1).
		RunWith(a.dataDB).
		QueryRowContext(ctx).
		Scan(&existing)
	switch {
	case err == nil:
		return nil, errors.NewEntryExistsError("username already taken")
	case !errors.Is(err, sql.ErrNoRows):
		return nil, errors.HandleDataDBError(err)
	}

	password, err := bcrypt.GenerateFromPassword(a.peppered(req.Pwd), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewFatalError(err)
	}

	tx, err := a.dataDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	// Defer a rollback in case anything fails.
	defer tx.Rollback()

	// * create user account
	_, err = sq.
		Insert("accounts").
		Columns("id", "username", "created_at", "updated_at").
		Values(account.ID, account.Username, now, now).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	credentials := &models.Credentials{
		ID:       account.ID,
		Password: string(password),
	}

	// * store password hash apart from the profile
	_, err = sq.
		Insert("credentials").
		Columns("id", "password").
		Values(credentials.ID, credentials.Password).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	a.log.Info("account created", zap.String("id", account.ID), zap.String("username", account.Username))

	return &responses.Response[*models.Account]{
		Status:  "successful",
		Message: "Account created successfully",
		Data:    account,
	}, nil
}

func (a *accountService) Login(ctx context.Context, req *requests.LoginRequest) (*responses.Response[*responses.LoginResponseData], error) {
	account := &models.Account{}
	var password string
	err := sq.
		Select("accounts.id", "accounts.username", "accounts.created_at", "accounts.updated_at", "credentials.password").
		From("accounts").
		Join("credentials on credentials.id = accounts.id").
		Where(sq.Eq{"accounts.username": normalizeUsername(req.Username)}).
		Limit(1).
		RunWith(a.dataDB).
		QueryRowContext(ctx).
		Scan(&account.ID, &account.Username, &account.CreatedAt, &account.UpdatedAt, &password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewAuthenticationError("invalid username or password")
	}
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(password), a.peppered(req.Pwd)); err != nil {
		a.log.Info("failed login attempt", zap.String("id", account.ID))
		return nil, errors.NewAuthenticationError("invalid username or password")
	}

	now := time.Now()
	accessToken := &models.AccessToken{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Token:     cuid.New(),
		ExpiresAt: now.Add(a.cfg.Auth.TokenDuration),
		CreatedAt: now,
	}

	// * create session token to authenticate requests
	_, err = sq.
		Insert("access_tokens").
		Columns("id", "account_id", "token", "expires_at", "created_at").
		Values(accessToken.ID, accessToken.AccountID, accessToken.Token, accessToken.ExpiresAt, accessToken.CreatedAt).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return &responses.Response[*responses.LoginResponseData]{
		Status:  "successful",
		Message: "Login successful",
		Data: &responses.LoginResponseData{
			User:      account,
			Token:     accessToken.Token,
			ExpiresAt: accessToken.ExpiresAt,
		},
	}, nil
}

func (a *accountService) Logoff(ctx context.Context, token string) error {
	_, err := sq.
		Delete("access_tokens").
		Where(sq.Eq{"token": token}).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}
	return nil
}

func (a *accountService) GetAccountByAccessToken(ctx context.Context, token string) (*models.Account, error) {
	account := &models.Account{}
	accessToken := &models.AccessToken{Token: token}
	err := sq.
		Select("accounts.id", "accounts.username", "accounts.created_at", "accounts.updated_at", "access_tokens.expires_at").
		From("access_tokens").
		Join("accounts on access_tokens.account_id = accounts.id").
		Where(sq.Eq{"token": token}).
		RunWith(a.dataDB).
		QueryRowContext(ctx).
		Scan(&account.ID, &account.Username, &account.CreatedAt, &account.UpdatedAt, &accessToken.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewInvalidTokenError()
	}
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	if accessToken.Expired(time.Now()) {
		return nil, errors.NewExpiredTokenError()
	}

	return account, nil
}

func (a *accountService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	res, err := sq.
		Delete("access_tokens").
		Where(sq.Lt{"expires_at": time.Now()}).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.HandleDataDBError(err)
	}
	return res.RowsAffected()
}
