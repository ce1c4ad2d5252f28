// Package whatsapp formats wa.me deep links. It performs no network calls.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	baseURL = "https://wa.me/"
	// DefaultCountryCode is prepended to local numbers
	DefaultCountryCode = "591"
)

// DepositMessage holds what the receipt notification shows
type DepositMessage struct {
	UserName   string
	PlanType   string
	Amount     decimal.Decimal
	TotalSaved decimal.Decimal
	Date       time.Time
	ReceiptURL string
}

// NormalizePhone turns a stored phone into the digits wa.me expects.
// International numbers keep their own prefix; local numbers lose one
// leading zero and get countryCode prepended.
func NormalizePhone(phone, countryCode string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return strings.Replace(phone, "+", "", 1)
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	phone = strings.TrimPrefix(phone, "0")
	return countryCode + phone
}

// Text renders the message body
func (m DepositMessage) Text() string {
	firstName := m.UserName
	if fields := strings.Fields(m.UserName); len(fields) > 0 {
		firstName = fields[0]
	}

	var b strings.Builder
	b.WriteString("*RECIBO DE DEPÓSITO - SISTEMA DE AHORROS ENERGY*\n\n")
	fmt.Fprintf(&b, "Hola %s,\n\n", firstName)
	b.WriteString("Tu depósito ha sido registrado exitosamente:\n\n")
	fmt.Fprintf(&b, "*Monto Depositado:* Bs. %s\n", m.Amount.StringFixed(2))
	fmt.Fprintf(&b, "*Ahorrado Hasta Hoy:* Bs. %s\n", m.TotalSaved.StringFixed(2))
	fmt.Fprintf(&b, "*Plan:* %s\n", m.PlanType)
	fmt.Fprintf(&b, "*Fecha:* %s\n\n", m.Date.Format("2/1/2006"))
	fmt.Fprintf(&b, "*Tu recibo PDF:* %s\n\n", m.ReceiptURL)
	b.WriteString("*¡Gracias por tu ahorro!* 💰")
	return b.String()
}

// BuildLink returns the wa.me link that opens a chat with phone prefilled with text
func BuildLink(phone, countryCode, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return baseURL + NormalizePhone(phone, countryCode) + "?text=" + encoded
}

// DepositLink is BuildLink for a deposit receipt notification
func DepositLink(phone, countryCode string, msg DepositMessage) string {
	return BuildLink(phone, countryCode, msg.Text())
}
