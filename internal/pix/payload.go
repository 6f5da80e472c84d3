// Package pix encodes and decodes static PIX "Copia e Cola" payloads
// (BR Code, an EMV QR profile).
package pix

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field ids and fixed values of the static payload.
const (
	idPayloadFormat   = "00"
	idInitiation      = "01"
	idMerchantAccount = "26"
	idMCC             = "52"
	idCurrency        = "53"
	idAmount          = "54"
	idCountry         = "58"
	idMerchantName    = "59"
	idMerchantCity    = "60"
	idAdditionalData  = "62"
	idCRC             = "63"

	idGUI    = "00"
	idPixKey = "01"
	idTxID   = "05"

	payloadFormat = "01"
	staticQR      = "12"
	pixGUI        = "BR.GOV.BCB.PIX"
	mccUnset      = "0000"
	currencyBRL   = "986"
	countryBR     = "BR"

	// crcPrefix is field 63 with its fixed length, placed before the checksum.
	crcPrefix = idCRC + "04"
)

// Wire limits.
const (
	MaxNameLen = 25
	MaxCityLen = 15
	MaxTxIDLen = 25
	// 99 minus the GUI sub-field (18) and the key sub-field header (4).
	MaxKeyLen = MaxFieldLen - 18 - 4
)

// NoTxID marks a payload that carries no transaction identifier.
const NoTxID = "***"

var (
	ErrChecksum     = errors.New("pix: checksum mismatch")
	ErrMissingField = errors.New("pix: missing field")
)

// Charge is the input of a static payload.
type Charge struct {
	PixKey       string
	MerchantName string
	MerchantCity string
	Amount       decimal.Decimal
	TxID         string
}

// BuildStatic assembles the static payload for c and appends its CRC16.
// It never fails: oversized values are truncated and unsupported characters
// in name/city are dropped.
func BuildStatic(c Charge) string {
	account := FormatField(idGUI, pixGUI) + FormatField(idPixKey, truncate(c.PixKey, MaxKeyLen))

	txID := truncate(c.TxID, MaxTxIDLen)
	if txID == "" {
		txID = NoTxID
	}

	var b strings.Builder
	b.WriteString(FormatField(idPayloadFormat, payloadFormat))
	b.WriteString(FormatField(idInitiation, staticQR))
	b.WriteString(FormatField(idMerchantAccount, account))
	b.WriteString(FormatField(idMCC, mccUnset))
	b.WriteString(FormatField(idCurrency, currencyBRL))
	b.WriteString(FormatField(idAmount, FormatAmount(c.Amount)))
	b.WriteString(FormatField(idCountry, countryBR))
	b.WriteString(FormatField(idMerchantName, truncate(Normalize(c.MerchantName), MaxNameLen)))
	b.WriteString(FormatField(idMerchantCity, truncate(Normalize(c.MerchantCity), MaxCityLen)))
	b.WriteString(FormatField(idAdditionalData, FormatField(idTxID, txID)))
	b.WriteString(crcPrefix)

	payload := b.String()
	return payload + CRC16(payload)
}

// FormatAmount renders an amount with two decimals and a dot separator.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var outsidePrintableASCII = runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII || !unicode.IsPrint(r)
})

// Normalize uppercases s and reduces it to printable ASCII: accents are
// decomposed and stripped, anything else outside ASCII is dropped.
func Normalize(s string) string {
	// chains keep internal buffers, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(outsidePrintableASCII))
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return strings.ToUpper(out)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Verify checks that the trailing 4 hex digits of payload match the CRC16 of
// everything before them.
func Verify(payload string) error {
	if len(payload) < len(crcPrefix)+4 || payload[len(payload)-8:len(payload)-4] != crcPrefix {
		return fmt.Errorf("%w: %s", ErrMissingField, idCRC)
	}
	body, sum := payload[:len(payload)-4], payload[len(payload)-4:]
	if want := CRC16(body); !strings.EqualFold(sum, want) {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksum, sum, want)
	}
	return nil
}

// Decode verifies and parses a static payload back into its Charge.
func Decode(payload string) (Charge, error) {
	if err := Verify(payload); err != nil {
		return Charge{}, err
	}
	fields, err := ParseFields(payload)
	if err != nil {
		return Charge{}, err
	}

	var c Charge
	account, ok := lookup(fields, idMerchantAccount)
	if !ok {
		return Charge{}, fmt.Errorf("%w: %s", ErrMissingField, idMerchantAccount)
	}
	sub, err := ParseFields(account)
	if err != nil {
		return Charge{}, err
	}
	if gui, _ := lookup(sub, idGUI); !strings.EqualFold(gui, pixGUI) {
		return Charge{}, fmt.Errorf("%w: gui %q", ErrMissingField, gui)
	}
	c.PixKey, _ = lookup(sub, idPixKey)

	if v, ok := lookup(fields, idAmount); ok {
		if c.Amount, err = decimal.NewFromString(v); err != nil {
			return Charge{}, fmt.Errorf("pix: amount %q: %w", v, err)
		}
	}
	c.MerchantName, _ = lookup(fields, idMerchantName)
	c.MerchantCity, _ = lookup(fields, idMerchantCity)

	if extra, ok := lookup(fields, idAdditionalData); ok {
		sub, err := ParseFields(extra)
		if err != nil {
			return Charge{}, err
		}
		c.TxID, _ = lookup(sub, idTxID)
	}
	return c, nil
}
