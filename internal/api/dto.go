package api

import "github.com/AgentTarik/pizzeria-api/internal/hours"

// Entrada para gerar o PIX de um pedido
type GeneratePixRequest struct {
	CustomerName string `json:"customer_name" validate:"max=80"`
	// Amount is accepted from older clients but never used: the stored order total wins.
	Amount *float64 `json:"amount,omitempty"`
}

// Saída do PIX gerado
type GeneratePixResponse struct {
	PixCode   string `json:"pix_code"`
	TxID      string `json:"tx_id"`
	Amount    string `json:"amount"`
	Provider  string `json:"provider"` // efipay | static_fallback | static
	PixKey    string `json:"pix_key"`  // masked
	QRCodePNG string `json:"qr_code_png,omitempty"`
}

type HoursResponse struct {
	Schedule hours.Schedule  `json:"schedule"`
	Closures []hours.Closure `json:"closures"`
	DayNames [7]string       `json:"day_names"`
}

type UpdateHourRequest struct {
	Open    string `json:"open"    validate:"required,hhmm"`
	Close   string `json:"close"   validate:"required,hhmm"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

type ClosureRequest struct {
	Date   string `json:"date"   validate:"required,date"`
	Reason string `json:"reason" validate:"max=200"`
}

type SettingsRequest struct {
	Name    string `json:"name"     validate:"required,max=80"`
	PixKey  string `json:"pix_key"  validate:"max=77"`
	PixName string `json:"pix_name" validate:"max=25"`
	IsOpen  *bool  `json:"is_open"  validate:"required"`
}

type SettingsResponse struct {
	Name    string `json:"name"`
	PixKey  string `json:"pix_key"`
	PixName string `json:"pix_name"`
	IsOpen  bool   `json:"is_open"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
