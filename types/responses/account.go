package responses

import (
	"time"

	"github.com/2HgO/fixedfloat-go/models"
)

type LoginResponseData struct {
	User      *models.Account `json:"user"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type LogoffResponseData struct {
	LoggedOff bool `json:"logged_off"`
}
