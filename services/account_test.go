package services

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/2HgO/fixedfloat-go/errors"
	"github.com/2HgO/fixedfloat-go/types/requests"
)

func newTestAccountService(t *testing.T) (*accountService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc, err := NewAccountService(db, testConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAccountService() error = %v", err)
	}
	return svc.(*accountService), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestAccountService_Signup(t *testing.T) {
	svc, mock := newTestAccountService(t)

	mock.ExpectQuery("SELECT id FROM accounts WHERE username = ?").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.Signup(context.Background(), &requests.SignupRequest{Username: "Alice", Pwd: "password1"})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if res.Data.Username != "alice" || res.Data.ID == "" {
		t.Fatalf("account = %+v", res.Data)
	}
	expectationsMet(t, mock)
}

func TestAccountService_SignupUsernameTaken(t *testing.T) {
	svc, mock := newTestAccountService(t)

	mock.ExpectQuery("SELECT id FROM accounts").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-1"))

	_, err := svc.Signup(context.Background(), &requests.SignupRequest{Username: "alice", Pwd: "password1"})
	if appErr := errors.AsAppError(err); appErr.Code != http.StatusConflict || appErr.Type != errors.ErrEntryExists {
		t.Fatalf("error = %+v", appErr)
	}
	expectationsMet(t, mock)
}

func TestAccountService_Login(t *testing.T) {
	svc, mock := newTestAccountService(t)
	hash, err := bcrypt.GenerateFromPassword(svc.peppered("password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now()

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "created_at", "updated_at", "password"}).
			AddRow("acc-1", "alice", now, now, string(hash))
	}

	t.Run("valid", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts JOIN credentials").WithArgs("alice").WillReturnRows(rows())
		mock.ExpectExec("INSERT INTO access_tokens").
			WithArgs(sqlmock.AnyArg(), "acc-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		res, err := svc.Login(context.Background(), &requests.LoginRequest{Username: "ALICE", Pwd: "password1"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if res.Data.Token == "" || res.Data.User.ID != "acc-1" {
			t.Fatalf("login = %+v", res.Data)
		}
		if d := time.Until(res.Data.ExpiresAt); d <= 29*time.Minute || d > 30*time.Minute {
			t.Fatalf("token lifetime = %v", d)
		}
		expectationsMet(t, mock)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts JOIN credentials").WithArgs("alice").WillReturnRows(rows())

		_, err := svc.Login(context.Background(), &requests.LoginRequest{Username: "alice", Pwd: "password2"})
		if appErr := errors.AsAppError(err); appErr.Code != http.StatusUnauthorized || appErr.Type != errors.ErrAuthentication {
			t.Fatalf("error = %+v", appErr)
		}
		expectationsMet(t, mock)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts JOIN credentials").WithArgs("bob").WillReturnError(sql.ErrNoRows)

		_, err := svc.Login(context.Background(), &requests.LoginRequest{Username: "bob", Pwd: "password1"})
		if appErr := errors.AsAppError(err); appErr.Type != errors.ErrAuthentication {
			t.Fatalf("error = %+v", appErr)
		}
		expectationsMet(t, mock)
	})
}

func TestAccountService_GetAccountByAccessToken(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		expiresAt time.Time
		noRows    bool
		wantType  errors.ErrorType
	}{
		{name: "valid", expiresAt: now.Add(time.Minute)},
		{name: "expired", expiresAt: now.Add(-time.Minute), wantType: errors.ErrExpiredToken},
		{name: "unknown", noRows: true, wantType: errors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestAccountService(t)
			rows := sqlmock.NewRows([]string{"id", "username", "created_at", "updated_at", "expires_at"})
			if !tt.noRows {
				rows.AddRow("acc-1", "alice", now, now, tt.expiresAt)
			}
			mock.ExpectQuery("SELECT (.+) FROM access_tokens JOIN accounts").WithArgs("tok").WillReturnRows(rows)

			account, err := svc.GetAccountByAccessToken(context.Background(), "tok")
			if tt.wantType == "" {
				if err != nil || account.Username != "alice" {
					t.Fatalf("GetAccountByAccessToken() = %+v, %v", account, err)
				}
			} else if appErr := errors.AsAppError(err); appErr.Type != tt.wantType || appErr.Code != http.StatusUnauthorized {
				t.Fatalf("error = %+v", appErr)
			}
			expectationsMet(t, mock)
		})
	}
}

func TestAccountService_LogoffAndPurge(t *testing.T) {
	svc, mock := newTestAccountService(t)

	mock.ExpectExec("DELETE FROM access_tokens WHERE token = ?").WithArgs("tok").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := svc.Logoff(context.Background(), "tok"); err != nil {
		t.Fatalf("Logoff() error = %v", err)
	}

	mock.ExpectExec("DELETE FROM access_tokens WHERE expires_at < ?").WithArgs(sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 4))
	n, err := svc.PurgeExpiredTokens(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("PurgeExpiredTokens() = %d, %v", n, err)
	}
	expectationsMet(t, mock)
}
