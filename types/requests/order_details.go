package requests

type OrderDetailsRequest struct {
	ID    string `json:"id" query:"id" validate:"required"`
	Token string `json:"token" query:"token" validate:"required"`
}
