package whatsapp

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]struct {
		phone, code, want string
	}{
		"local":              {"71234567", "", "59171234567"},
		"leading zero":       {"071234567", "591", "59171234567"},
		"international":      {"+5491122334455", "591", "5491122334455"},
		"custom code":        {"912345678", "51", "51912345678"},
		"surrounding spaces": {" 71234567 ", "", "59171234567"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.phone, tc.code))
		})
	}
}

func TestDepositLink(t *testing.T) {
	msg := DepositMessage{
		UserName:   "Ana María Pérez",
		PlanType:   "Ahorro Campamento 2027",
		Amount:     decimal.NewFromInt(50),
		TotalSaved: decimal.RequireFromString("225.5"),
		Date:       time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
		ReceiptURL: "http://localhost:5000/receipts/recibo_1.pdf?x=1&y=2",
	}

	link := DepositLink("71234567", "591", msg)
	require.True(t, strings.HasPrefix(link, "https://wa.me/59171234567?text="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Hola Ana,")
	assert.Contains(t, text, "*Monto Depositado:* Bs. 50.00")
	assert.Contains(t, text, "*Ahorrado Hasta Hoy:* Bs. 225.50")
	assert.Contains(t, text, "*Fecha:* 7/3/2026")
	assert.Contains(t, text, msg.ReceiptURL)
}
