package checkout

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC)

type stubCarts struct{ summary cart.Summary }

func (s stubCarts) Summary(context.Context, string) cart.Summary { return s.summary }

func newTestService(t *testing.T, summary cart.Summary) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config: config.WhatsAppConfig{BaseURL: "https://wa.me/", Phone: "+573143638924", Timezone: "America/Bogota"},
		Carts:  stubCarts{summary: summary},
		Clock:  func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return svc
}

func sampleSummary() cart.Summary {
	serum := catalog.Product{ID: "serum", Name: "Sérum Facial", SKU: "FAC010"}
	kit := catalog.Bundle{
		Product:       catalog.Product{ID: "kit", Name: "Kit Capilar", SKU: "COMBO01", Price: 40000},
		OriginalPrice: 50000,
	}
	return cart.Summary{
		Subtotal:  120000,
		Total:     120000,
		ItemCount: 3,
		Lines: []cart.Line{
			{ID: "l1", Type: enums.LineTypeProduct, Product: &serum, Quantity: 2, UnitPrice: 20000, Total: 40000},
			{ID: "l2", Type: enums.LineTypeBundle, Bundle: &kit, Quantity: 2, UnitPrice: 40000, Total: 80000},
		},
	}
}

func decodedText(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("text")
}

func TestBuildWhatsAppHandoff(t *testing.T) {
	svc := newTestService(t, cart.Summary{})
	customer := &Customer{Name: "Ana", Phone: "3001234567"}

	h := svc.BuildWhatsAppHandoff(sampleSummary(), customer)

	assert.True(t, strings.HasPrefix(h.URL, "https://wa.me/+573143638924?text="))
	assert.NotContains(t, h.URL, " ")
	assert.Equal(t, h.Message, decodedText(t, h.URL))

	msg := h.Message
	assert.True(t, strings.HasPrefix(msg, "🛒 *Nuevo Pedido - Lushka*\n\n👤 *Datos del Cliente:*\n• Nombre: Ana\n• Teléfono: 3001234567\n\n"))
	assert.NotContains(t, msg, "Email")
	assert.Contains(t, msg, "🛍️ *Productos:*\n1. Sérum Facial\n   • Cantidad: 2\n   • Precio unitario: $20.000\n   • Subtotal: $40.000\n   • SKU: FAC010\n")
	assert.Contains(t, msg, "🎁 *Combos:*\n1. Kit Capilar\n")
	assert.Contains(t, msg, "   • Ahorro: $10.000\n   • SKU: COMBO01\n")
	assert.Contains(t, msg, "• Subtotal: $120.000\n• Total: $120.000\n• Total de artículos: 3\n")
	assert.NotContains(t, msg, "Descuento")
	assert.Contains(t, msg, "⏰ *Fecha del pedido:* 01/03/2026, 15:30:00")
	assert.True(t, strings.HasSuffix(msg, "✨ *Gracias por tu compra!*"))
}

func TestBuildWhatsAppHandoffEmptyCart(t *testing.T) {
	h := newTestService(t, cart.Summary{}).BuildWhatsAppHandoff(cart.Summary{}, nil)

	msg := decodedText(t, h.URL)
	assert.Contains(t, msg, "📦 *Detalles del Pedido:*\n💰 *Resumen del Pedido:*\n")
	assert.Contains(t, msg, "• Total: $0\n")
	assert.NotContains(t, msg, "Productos")
	assert.NotContains(t, msg, "Combos")
	assert.NotContains(t, msg, "Datos del Cliente")
}

func TestBuildWhatsAppHandoffShowsDiscount(t *testing.T) {
	summary := sampleSummary()
	summary.Discount = 20000
	summary.Total = 100000

	msg := newTestService(t, cart.Summary{}).BuildWhatsAppHandoff(summary, &Customer{}).Message
	assert.Contains(t, msg, "• Descuento: -$20.000\n")
	assert.NotContains(t, msg, "Datos del Cliente")
}

func TestCartHandoffUsesSessionCart(t *testing.T) {
	h := newTestService(t, sampleSummary()).CartHandoff(context.Background(), "sess-1", nil)
	assert.Contains(t, h.Message, "Kit Capilar")
	assert.Equal(t, "+573143638924", h.Phone)
}

func TestCustomMessage(t *testing.T) {
	svc := newTestService(t, cart.Summary{})

	h, err := svc.CustomMessage(context.Background(), "  Hola, ¿tienen envíos a Cali? & más  ")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/+573143638924?text=Hola%2C%20%C2%BFtienen%20env%C3%ADos%20a%20Cali%3F%20%26%20m%C3%A1s", h.URL)

	_, err = svc.CustomMessage(context.Background(), "   ")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.CustomMessage(context.Background(), strings.Repeat("a", maxCustomMessageLength+1))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestNewServiceValidatesConfig(t *testing.T) {
	_, err := NewService(ServiceParams{Config: config.WhatsAppConfig{Phone: "+57"}, Carts: stubCarts{}})
	assert.Error(t, err)

	_, err = NewService(ServiceParams{Config: config.WhatsAppConfig{BaseURL: "https://wa.me", Phone: "+57", Timezone: "Mars/Olympus"}, Carts: stubCarts{}})
	assert.Error(t, err)

	_, err = NewService(ServiceParams{Config: config.WhatsAppConfig{BaseURL: "https://wa.me", Phone: "+57"}})
	assert.Error(t, err)
}
