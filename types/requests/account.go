package requests

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Pwd      string `json:"pwd" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Pwd      string `json:"pwd" validate:"required"`
}

type LogoffRequest struct {
	Logoff bool `json:"logoff"`
}
