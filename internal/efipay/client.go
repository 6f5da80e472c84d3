// Package efipay talks to the EfiPay (Gerencianet) PIX API to create dynamic
// charges.
package efipay

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	BaseURLProduction = "https://pix.api.efipay.com.br"
	BaseURLSandbox    = "https://pix-h.api.efipay.com.br"

	chargeExpirySeconds = 3600
	minChargeTxIDLen    = 26
	maxChargeTxIDLen    = 35
	tokenMargin         = 30 * time.Second
	maxErrorBody        = 2048
)

// Stage names the provider call that failed.
type Stage string

const (
	StageAuth   Stage = "auth"
	StageCharge Stage = "charge"
	StageQRCode Stage = "qrcode"
)

var ErrEmptyCode = errors.New("efipay: charge returned no pix code")

// Error classifies a failed provider call.
type Error struct {
	Stage      Stage
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("efipay %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("efipay %s: status %d: %s", e.Stage, e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error { return e.Err }

type Options struct {
	ClientID     string
	ClientSecret string
	PixKey       string
	BaseURL      string
	Timeout      time.Duration
	Certificate  *tls.Certificate
}

type Client struct {
	log    *zap.Logger
	opts   Options
	http   *http.Client
	tokens *TokenCache
}

func New(log *zap.Logger, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURLProduction
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultPixTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Certificate != nil {
		transport.TLSClientConfig = &tls.Config{
			Certificates: []tls.Certificate{*opts.Certificate},
			MinVersion:   tls.VersionTLS12,
		}
	}
	return &Client{
		log:    log,
		opts:   opts,
		http:   &http.Client{Timeout: opts.Timeout, Transport: transport},
		tokens: NewTokenCache(tokenMargin),
	}
}

// NewFromConfig selects the environment and loads the optional mTLS pair.
func NewFromConfig(log *zap.Logger, cfg config.EfiPay) (*Client, error) {
	opts := Options{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		PixKey:       cfg.PixKey,
		BaseURL:      BaseURLProduction,
		Timeout:      cfg.Timeout,
	}
	if cfg.Sandbox {
		opts.BaseURL = BaseURLSandbox
	}
	if cfg.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load efipay certificate: %w", err)
		}
		opts.Certificate = &cert
	}
	return New(log, opts), nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ChargeRequest is the body of PUT /v2/cob/{txid}.
type ChargeRequest struct {
	Calendario struct {
		Expiracao int `json:"expiracao"`
	} `json:"calendario"`
	Devedor struct {
		Nome string `json:"nome"`
	} `json:"devedor"`
	Valor struct {
		Original string `json:"original"`
	} `json:"valor"`
	Chave              string `json:"chave"`
	SolicitacaoPagador string `json:"solicitacaoPagador"`
}

type Charge struct {
	TxID   string `json:"txid"`
	Status string `json:"status"`
	Loc    *struct {
		ID       int    `json:"id"`
		Location string `json:"location"`
	} `json:"loc"`
	PixCopiaECola string `json:"pixCopiaECola"`
}

type QRCode struct {
	QRCode       string `json:"qrcode"`
	ImagemQRCode string `json:"imagemQrcode"`
}

// Token returns a cached access token or runs the client-credentials grant.
func (c *Client) Token(ctx context.Context) (string, error) {
	if tok, ok := c.tokens.Get(); ok {
		return tok, nil
	}

	body, _ := json.Marshal(map[string]string{"grant_type": "client_credentials"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Stage: StageAuth, Err: err}
	}
	req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)
	req.Header.Set("Content-Type", "application/json")

	var tr tokenResponse
	if err := c.do(req, StageAuth, &tr); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", &Error{Stage: StageAuth, Err: errors.New("empty access token")}
	}
	ttl := time.Duration(tr.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	c.tokens.Set(tr.AccessToken, ttl)
	c.log.Debug("efipay token refreshed", zap.Duration("ttl", ttl))
	return tr.AccessToken, nil
}

func (c *Client) CreateCharge(ctx context.Context, token, txID string, body ChargeRequest) (Charge, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return Charge{}, &Error{Stage: StageCharge, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.opts.BaseURL+"/v2/cob/"+txID, bytes.NewReader(b))
	if err != nil {
		return Charge{}, &Error{Stage: StageCharge, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var ch Charge
	if err := c.do(req, StageCharge, &ch); err != nil {
		var pe *Error
		if errors.As(err, &pe) && pe.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		return Charge{}, err
	}
	return ch, nil
}

func (c *Client) QRCode(ctx context.Context, token string, locID int) (QRCode, error) {
	url := c.opts.BaseURL + "/v2/loc/" + strconv.Itoa(locID) + "/qrcode"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return QRCode{}, &Error{Stage: StageQRCode, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var qr QRCode
	if err := c.do(req, StageQRCode, &qr); err != nil {
		return QRCode{}, err
	}
	return qr, nil
}

// ChargeTxID adapts an order txid to the 26 to 35 alphanumerics accepted by
// PUT /v2/cob/{txid}: short ids are right-padded with zeros.
func ChargeTxID(txID string) string {
	if len(txID) > maxChargeTxIDLen {
		return txID[:maxChargeTxIDLen]
	}
	if n := minChargeTxIDLen - len(txID); n > 0 {
		return txID + strings.Repeat("0", n)
	}
	return txID
}

// RequestDynamicCharge authenticates, creates a charge for the exact amount
// and returns its copy-and-paste code.
func (c *Client) RequestDynamicCharge(ctx context.Context, amount decimal.Decimal, txID, payerName string) (string, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return "", err
	}

	var body ChargeRequest
	body.Calendario.Expiracao = chargeExpirySeconds
	body.Devedor.Nome = payerName
	body.Valor.Original = amount.StringFixed(2)
	body.Chave = c.opts.PixKey
	body.SolicitacaoPagador = "Pedido " + txID

	ch, err := c.CreateCharge(ctx, token, ChargeTxID(txID), body)
	if err != nil {
		return "", err
	}

	if ch.Loc != nil && ch.Loc.ID != 0 {
		qr, err := c.QRCode(ctx, token, ch.Loc.ID)
		if err != nil {
			return "", err
		}
		if qr.QRCode == "" {
			return "", &Error{Stage: StageQRCode, Err: ErrEmptyCode}
		}
		return qr.QRCode, nil
	}
	if ch.PixCopiaECola == "" {
		return "", &Error{Stage: StageCharge, Err: ErrEmptyCode}
	}
	return ch.PixCopiaECola, nil
}

func (c *Client) do(req *http.Request, stage Stage, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Stage: stage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Stage: stage, StatusCode: resp.StatusCode, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Stage: stage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
