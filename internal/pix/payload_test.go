package pix

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const bcbExample = "00020126580014br.gov.bcb.pix0136123e4567-e12b-12d1-a456-4266554400005204000053039865802BR5913Fulano de Tal6008BRASILIA62070503***63041D3D"

func TestCRC16(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "FFFF"},
		{"123456789", "29B1"},
		{"00020101021226330014BR.GOV.BCB.PIX011112345678901520400005303986540523.505802BR5917PIZZARIA ITALIANA6009SAO PAULO62270523PED0123456789abcdef01236304", "C821"},
		// Banco Central's published BR Code example
		{bcbExample[:len(bcbExample)-4], "1D3D"},
	}
	for _, c := range cases {
		if got := CRC16(c.in); got != c.want {
			t.Errorf("CRC16(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestDecodePublishedExample(t *testing.T) {
	got, err := Decode(bcbExample)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Charge{
		PixKey:       "123e4567-e12b-12d1-a456-426655440000",
		MerchantName: "Fulano de Tal",
		MerchantCity: "BRASILIA",
		TxID:         NoTxID,
	}
	if got.PixKey != want.PixKey || got.MerchantName != want.MerchantName ||
		got.MerchantCity != want.MerchantCity || got.TxID != want.TxID || !got.Amount.IsZero() {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestFormatField(t *testing.T) {
	if got := FormatField("00", "01"); got != "000201" {
		t.Fatalf("got %q", got)
	}
	if got := FormatField("59", ""); got != "5900" {
		t.Fatalf("got %q", got)
	}
	inner := FormatField("00", "BR.GOV.BCB.PIX") + FormatField("01", "12345678901")
	if got := FormatField("26", inner); got != "26330014BR.GOV.BCB.PIX011112345678901" {
		t.Fatalf("nested field = %q", got)
	}

	long := FormatField("99", strings.Repeat("x", 150))
	if long[2:4] != "99" || len(long) != 4+MaxFieldLen {
		t.Fatalf("oversized value not clamped: prefix %q len %d", long[2:4], len(long))
	}

	accented := FormatField("99", strings.Repeat("é", 60))
	if accented[2:4] != "98" || !utf8.ValidString(accented) {
		t.Fatalf("multi-byte value split mid-rune: prefix %q valid %v", accented[2:4], utf8.ValidString(accented))
	}
}

func TestBuildStaticKnownPayloads(t *testing.T) {
	cases := []struct {
		name   string
		charge Charge
		want   string
	}{
		{
			name: "default merchant",
			charge: Charge{
				PixKey:       "12345678901",
				MerchantName: "Pizzaria Italiana",
				MerchantCity: "Sao Paulo",
				Amount:       decimal.RequireFromString("23.5"),
				TxID:         "PED0123456789abcdef0123",
			},
			want: "00020101021226330014BR.GOV.BCB.PIX011112345678901520400005303986540523.505802BR5917PIZZARIA ITALIANA6009SAO PAULO62270523PED0123456789abcdef01236304C821",
		},
		{
			name: "accented name",
			charge: Charge{
				PixKey:       "pix@pizzaria.com.br",
				MerchantName: "Pizzaria José Ávila",
				MerchantCity: "São Paulo",
				Amount:       decimal.RequireFromString("57.90"),
				TxID:         "PEDa1b2c3d4e5f6478890ab",
			},
			want: "00020101021226410014BR.GOV.BCB.PIX0119pix@pizzaria.com.br520400005303986540557.905802BR5919PIZZARIA JOSE AVILA6009SAO PAULO62270523PEDa1b2c3d4e5f6478890ab63044E4D",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := BuildStatic(c.charge); got != c.want {
				t.Fatalf("BuildStatic\n got %s\nwant %s", got, c.want)
			}
		})
	}
}

func TestBuildStaticSelfConsistent(t *testing.T) {
	inputs := []Charge{
		{PixKey: "12345678901", MerchantName: "A", MerchantCity: "B", Amount: decimal.Zero, TxID: "X"},
		{PixKey: "+5511999998888", MerchantName: "Cantina Dona Conceição & Filhos Ltda", MerchantCity: "Ribeirão das Neves", Amount: decimal.RequireFromString("1234.567"), TxID: strings.Repeat("T", 40)},
		{PixKey: "", MerchantName: "🍕 Forno à Lenha", MerchantCity: "", Amount: decimal.RequireFromString("0.1"), TxID: ""},
	}
	for _, in := range inputs {
		p := BuildStatic(in)
		if got, want := p[len(p)-4:], CRC16(p[:len(p)-4]); got != want {
			t.Errorf("trailer %s, want %s for %q", got, want, p)
		}
		if err := Verify(p); err != nil {
			t.Errorf("Verify(%q): %v", p, err)
		}
	}
}

func TestBuildStaticRoundTrip(t *testing.T) {
	in := Charge{
		PixKey:       "123e4567-e12b-12d1-a456-426655440000",
		MerchantName: "PIZZARIA ITALIANA",
		MerchantCity: "SAO PAULO",
		Amount:       decimal.RequireFromString("89.90"),
		TxID:         "PED123e4567e12b12d1a456",
	}
	got, err := Decode(BuildStatic(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.PixKey != in.PixKey || got.MerchantName != in.MerchantName || got.MerchantCity != in.MerchantCity || got.TxID != in.TxID {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, in)
	}
	if !got.Amount.Equal(in.Amount) {
		t.Fatalf("amount = %s, want %s", got.Amount, in.Amount)
	}
}

func TestBuildStaticFieldLimits(t *testing.T) {
	in := Charge{
		PixKey:       strings.Repeat("k", 120),
		MerchantName: strings.Repeat("N", 60),
		MerchantCity: strings.Repeat("C", 30),
		Amount:       decimal.RequireFromString("10"),
		TxID:         strings.Repeat("t", 30),
	}
	got, err := Decode(BuildStatic(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.MerchantName) != MaxNameLen {
		t.Errorf("name len = %d", len(got.MerchantName))
	}
	if len(got.MerchantCity) != MaxCityLen {
		t.Errorf("city len = %d", len(got.MerchantCity))
	}
	if len(got.TxID) != MaxTxIDLen {
		t.Errorf("txid len = %d", len(got.TxID))
	}
	if len(got.PixKey) != MaxKeyLen {
		t.Errorf("key len = %d", len(got.PixKey))
	}
}

func TestBuildStaticKeepsUTF8(t *testing.T) {
	in := Charge{
		PixKey:       strings.Repeat("é", 50),
		MerchantName: "Pizzaria",
		MerchantCity: "Sao Paulo",
		Amount:       decimal.RequireFromString("10"),
		TxID:         strings.Repeat("ção-", 5),
	}
	p := BuildStatic(in)
	if !utf8.ValidString(p) {
		t.Fatalf("payload is not valid UTF-8: %q", p)
	}
	got, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.TxID != strings.Repeat("ção-", 4) {
		t.Errorf("txid = %q", got.TxID)
	}
	if len(got.PixKey) != MaxKeyLen-1 || !strings.HasPrefix(in.PixKey, got.PixKey) {
		t.Errorf("key = %q (%d bytes)", got.PixKey, len(got.PixKey))
	}
}

func TestAmountFormatting(t *testing.T) {
	cases := map[string]string{
		"23.5":   "23.50",
		"0":      "0.00",
		"7":      "7.00",
		"10.005": "10.01",
		"199.99": "199.99",
	}
	for in, want := range cases {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatAmount(%s) = %s, want %s", in, got, want)
		}
	}

	p := BuildStatic(Charge{PixKey: "k", MerchantName: "n", MerchantCity: "c", Amount: decimal.NewFromFloat(23.5), TxID: "t"})
	if !strings.Contains(p, "540523.50") {
		t.Fatalf("amount field missing in %s", p)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Pizzaria José Ávila": "PIZZARIA JOSE AVILA",
		"São Paulo":           "SAO PAULO",
		"Ração & Cia.":        "RACAO & CIA.",
		"Forno 🍕 Lenha":       "FORNO  LENHA",
		"Straße":              "STRAE",
		"":                    "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	p := BuildStatic(Charge{PixKey: "12345678901", MerchantName: "X", MerchantCity: "Y", Amount: decimal.RequireFromString("23.50"), TxID: "T"})
	tampered := strings.Replace(p, "23.50", "13.50", 1)
	if err := Verify(tampered); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
	if err := Verify("000201"); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestParseFieldsMalformed(t *testing.T) {
	for _, s := range []string{"00", "0005abc", "00xx01"} {
		if _, err := ParseFields(s); !errors.Is(err, ErrMalformedField) {
			t.Errorf("ParseFields(%q) err = %v", s, err)
		}
	}
}
