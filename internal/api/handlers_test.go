package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/auth"
	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"github.com/AgentTarik/pizzeria-api/internal/payment"
	"github.com/AgentTarik/pizzeria-api/internal/pix"
	"github.com/AgentTarik/pizzeria-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() { gin.SetMode(gin.TestMode) }

var (
	orderID   = uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")
	zeroOrder = uuid.MustParse("a1b2c3d4-e5f6-4788-90ab-cdef01234567")

	testJWT = config.JWT{Secret: "test-secret", Issuer: "pizzeria-api", TTL: time.Minute}
)

const staffPassword = "forno-a-lenha"

type failingCharger struct{}

func (failingCharger) RequestDynamicCharge(context.Context, decimal.Decimal, string, string) (string, error) {
	return "", errors.New("connection reset")
}

type fixture struct {
	r     *gin.Engine
	store *storage.MemoryStore
	now   time.Time
}

func newFixture(t *testing.T, charger payment.Charger) *fixture {
	t.Helper()
	ctx := context.Background()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewMemoryStore()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.CreateOrder(ctx, storage.Order{ID: orderID, Total: decimal.RequireFromString("23.50")}))
	must(store.CreateOrder(ctx, storage.Order{ID: zeroOrder, Total: decimal.Zero}))
	must(store.UpsertHour(ctx, hours.Entry{Day: 1, Open: "18:00", Close: "23:00", Enabled: true}))
	must(store.UpsertHour(ctx, hours.Entry{Day: 2, Open: "18:00", Close: "23:00", Enabled: true}))

	hash, err := bcrypt.GenerateFromPassword([]byte(staffPassword), bcrypt.MinCost)
	must(err)
	must(store.CreateStaff(ctx, storage.StaffUser{ID: uuid.New(), Name: "Admin", Email: "admin@pizzaria.com", Role: auth.RoleAdmin, PasswordHash: string(hash)}))
	must(store.CreateStaff(ctx, storage.StaffUser{ID: uuid.New(), Name: "Caixa", Email: "caixa@pizzaria.com", Role: auth.RoleEmployee, PasswordHash: string(hash)}))

	svc := &payment.Service{
		Log:      zap.NewNop(),
		Orders:   store,
		Settings: store,
		Defaults: config.Pix{Key: config.DefaultPixKey, MerchantName: config.DefaultMerchantName, MerchantCity: config.DefaultMerchantCity},
	}
	if charger != nil {
		svc.Charger = charger
	}

	f := &fixture{store: store, now: time.Date(2026, 10, 19, 21, 0, 0, 0, loc)}
	v := NewValidator()
	h := &Handlers{
		Log:      zap.NewNop(),
		Payments: svc,
		Settings: store,
		Hours:    store,
		V:        v,
		Location: loc,
		Now:      func() time.Time { return f.now },
	}
	issuer, err := auth.NewJWTIssuer(testJWT)
	must(err)
	ah := &AuthHandlers{Log: zap.NewNop(), Staff: store, V: v, Tokens: issuer}

	f.r = gin.New()
	SetupRoutes(f.r, h, ah, testJWT)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T, email string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: email, Password: staffPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.AccessToken == "" {
		t.Fatalf("login response: %s", w.Body.String())
	}
	return out.AccessToken
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestGeneratePixUsesStoredTotal(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodPost, "/v1/orders/"+orderID.String()+"/pix", "", map[string]any{
		"customer_name": "Maria",
		"amount":        1.00,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	res := decodeBody[GeneratePixResponse](t, w)

	want := "00020101021226330014BR.GOV.BCB.PIX011112345678901520400005303986540523.505802BR5917PIZZARIA ITALIANA6009SAO PAULO62270523PED0123456789abcdef01236304C821"
	if res.PixCode != want {
		t.Fatalf("pix_code = %s", res.PixCode)
	}
	if res.Amount != "23.50" || res.TxID != "PED0123456789abcdef0123" || res.Provider != payment.ProviderStatic || res.PixKey != "1234****" {
		t.Errorf("response = %+v", res)
	}
	if res.QRCodePNG == "" {
		t.Error("missing qr code")
	}

	o, _ := f.store.GetOrder(context.Background(), orderID)
	if o.PixTransactionID != res.TxID {
		t.Errorf("persisted tx id = %q", o.PixTransactionID)
	}
}

func TestGeneratePixWithoutBody(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(t, http.MethodPost, "/v1/orders/"+orderID.String()+"/pix", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestGeneratePixFallback(t *testing.T) {
	f := newFixture(t, failingCharger{})
	w := f.do(t, http.MethodPost, "/v1/orders/"+orderID.String()+"/pix", "", map[string]any{"customer_name": "Maria"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	res := decodeBody[GeneratePixResponse](t, w)
	if res.Provider != payment.ProviderStaticFallback {
		t.Fatalf("provider = %q", res.Provider)
	}
	if err := pix.Verify(res.PixCode); err != nil {
		t.Fatalf("fallback code does not verify: %v", err)
	}
}

func TestGeneratePixErrors(t *testing.T) {
	f := newFixture(t, nil)
	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"bad id", "/v1/orders/not-a-uuid/pix", nil, http.StatusBadRequest},
		{"bad json", "/v1/orders/" + orderID.String() + "/pix", "{", http.StatusBadRequest},
		{"long name", "/v1/orders/" + orderID.String() + "/pix", map[string]any{"customer_name": strings.Repeat("x", 81)}, http.StatusUnprocessableEntity},
		{"unknown order", "/v1/orders/" + uuid.NewString() + "/pix", nil, http.StatusNotFound},
		{"zero total", "/v1/orders/" + zeroOrder.String() + "/pix", nil, http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := f.do(t, http.MethodPost, c.path, "", c.body); w.Code != c.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, c.status, w.Body.String())
			}
		})
	}
}

func TestStoreStatus(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_ = f.store.UpdateSettings(ctx, storage.Settings{Name: "Pizzaria", IsOpen: true})

	st := decodeBody[hours.Status](t, f.do(t, http.MethodGet, "/v1/store/status", "", nil))
	if !st.Open || st.Message != "" {
		t.Fatalf("monday 21:00 should be open: %+v", st)
	}

	f.now = f.now.Add(-11 * time.Hour) // 10:00
	st = decodeBody[hours.Status](t, f.do(t, http.MethodGet, "/v1/store/status", "", nil))
	if st.Open || st.Message != "Abrimos hoje às 18:00" {
		t.Fatalf("monday 10:00: %+v", st)
	}

	f.now = f.now.Add(11 * time.Hour)
	_ = f.store.UpdateSettings(ctx, storage.Settings{Name: "Pizzaria", IsOpen: false})
	st = decodeBody[hours.Status](t, f.do(t, http.MethodGet, "/v1/store/status", "", nil))
	if st.Open || !st.ScheduleOpen || st.ManualOpen || st.Message != hours.ClosedMessage {
		t.Fatalf("manually closed: %+v", st)
	}
}

func TestStoreStatusWithoutSettings(t *testing.T) {
	f := newFixture(t, nil)
	st := decodeBody[hours.Status](t, f.do(t, http.MethodGet, "/v1/store/status", "", nil))
	if !st.Open || !st.ManualOpen {
		t.Fatalf("missing settings should not close the store: %+v", st)
	}
}

func TestStoreHours(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(t, http.MethodGet, "/v1/store/hours", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	res := decodeBody[HoursResponse](t, w)
	if len(res.Schedule) != 2 || res.Schedule[0].Day != 1 || res.Closures == nil || res.DayNames[1] != "Segunda" {
		t.Fatalf("hours = %+v", res)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)
	cases := []struct {
		name   string
		body   any
		status int
	}{
		{"wrong password", LoginRequest{Email: "admin@pizzaria.com", Password: "wrong-password"}, http.StatusUnauthorized},
		{"unknown email", LoginRequest{Email: "nobody@pizzaria.com", Password: staffPassword}, http.StatusUnauthorized},
		{"invalid email", LoginRequest{Email: "admin", Password: staffPassword}, http.StatusUnprocessableEntity},
		{"bad json", "{", http.StatusBadRequest},
		{"mixed case email", LoginRequest{Email: "Admin@Pizzaria.com", Password: staffPassword}, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := f.do(t, http.MethodPost, "/v1/auth/login", "", c.body); w.Code != c.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, c.status, w.Body.String())
			}
		})
	}
}

func TestAdminRequiresAdminRole(t *testing.T) {
	f := newFixture(t, nil)
	if w := f.do(t, http.MethodGet, "/v1/admin/settings", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: %d", w.Code)
	}
	employee := f.login(t, "caixa@pizzaria.com")
	if w := f.do(t, http.MethodGet, "/v1/admin/settings", employee, nil); w.Code != http.StatusForbidden {
		t.Fatalf("employee: %d", w.Code)
	}
}

func TestAdminHoursAndClosures(t *testing.T) {
	f := newFixture(t, nil)
	token := f.login(t, "admin@pizzaria.com")

	w := f.do(t, http.MethodPut, "/v1/admin/hours/0", token, map[string]any{"open": "17:30", "close": "22:00", "enabled": true})
	if w.Code != http.StatusOK {
		t.Fatalf("update hour: %d %s", w.Code, w.Body.String())
	}
	sched, _ := f.store.ListHours(context.Background())
	if len(sched) != 3 || sched[0].Day != 0 || sched[0].Open != "17:30" {
		t.Fatalf("schedule = %+v", sched)
	}

	if w := f.do(t, http.MethodPut, "/v1/admin/hours/7", token, map[string]any{"open": "17:30", "close": "22:00", "enabled": true}); w.Code != http.StatusBadRequest {
		t.Fatalf("day 7: %d", w.Code)
	}
	if w := f.do(t, http.MethodPut, "/v1/admin/hours/1", token, map[string]any{"open": "25:00", "close": "22:00", "enabled": true}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad clock: %d", w.Code)
	}
	if w := f.do(t, http.MethodPut, "/v1/admin/hours/1", token, map[string]any{"open": "18:00", "close": "22:00"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing enabled: %d", w.Code)
	}

	if w := f.do(t, http.MethodPost, "/v1/admin/closures", token, ClosureRequest{Date: "2026-10-19", Reason: "Manutenção"}); w.Code != http.StatusCreated {
		t.Fatalf("add closure: %d %s", w.Code, w.Body.String())
	}
	st := decodeBody[hours.Status](t, f.do(t, http.MethodGet, "/v1/store/status", "", nil))
	if st.Open || st.Message != "Abrimos amanhã às 18:00" {
		t.Fatalf("closed today: %+v", st)
	}
	if w := f.do(t, http.MethodPost, "/v1/admin/closures", token, ClosureRequest{Date: "19/10/2026"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date: %d", w.Code)
	}

	if w := f.do(t, http.MethodDelete, "/v1/admin/closures/2026-10-19", token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("remove closure: %d", w.Code)
	}
	if w := f.do(t, http.MethodDelete, "/v1/admin/closures/2026-10-19", token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("remove twice: %d", w.Code)
	}
}

func TestAdminSettings(t *testing.T) {
	f := newFixture(t, nil)
	token := f.login(t, "admin@pizzaria.com")

	if w := f.do(t, http.MethodGet, "/v1/admin/settings", token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("empty settings: %d", w.Code)
	}

	closed := false
	w := f.do(t, http.MethodPut, "/v1/admin/settings", token, SettingsRequest{Name: "Pizzaria do Zé", PixKey: "pix@ze.com.br", IsOpen: &closed})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	got := decodeBody[SettingsResponse](t, f.do(t, http.MethodGet, "/v1/admin/settings", token, nil))
	if got.Name != "Pizzaria do Zé" || got.PixKey != "pix@ze.com.br" || got.IsOpen {
		t.Fatalf("settings = %+v", got)
	}

	if w := f.do(t, http.MethodPut, "/v1/admin/settings", token, map[string]any{"name": "X"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing is_open: %d", w.Code)
	}

	// the new key feeds the static payload
	res := decodeBody[GeneratePixResponse](t, f.do(t, http.MethodPost, "/v1/orders/"+orderID.String()+"/pix", "", nil))
	decoded, err := pix.Decode(res.PixCode)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.PixKey != "pix@ze.com.br" || decoded.MerchantName != "PIZZARIA DO ZE" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestPaymentEventsWithoutKafka(t *testing.T) {
	f := newFixture(t, nil)
	token := f.login(t, "admin@pizzaria.com")
	if w := f.do(t, http.MethodGet, "/v1/admin/payment-events", token, nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"db":"ok"`) {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
}
