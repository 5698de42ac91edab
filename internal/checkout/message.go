package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/angelmondragon/lushka-backend/pkg/money"
)

const timestampLayout = "02/01/2006, 15:04:05"

// Customer is optional contact data printed at the top of the order message.
type Customer struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c *Customer) empty() bool {
	return c == nil || (strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Email) == "" &&
		strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Address) == "")
}

// formatOrderMessage renders the order text for a cart summary.
func formatOrderMessage(summary cart.Summary, customer *Customer, at time.Time) string {
	var b strings.Builder
	b.WriteString("🛒 *Nuevo Pedido - Lushka*\n\n")

	if !customer.empty() {
		b.WriteString("👤 *Datos del Cliente:*\n")
		writeField(&b, "Nombre", customer.Name)
		writeField(&b, "Email", customer.Email)
		writeField(&b, "Teléfono", customer.Phone)
		writeField(&b, "Dirección", customer.Address)
		b.WriteString("\n")
	}

	b.WriteString("📦 *Detalles del Pedido:*\n")

	var products, bundles []cart.Line
	for _, l := range summary.Lines {
		switch l.Type {
		case enums.LineTypeProduct:
			products = append(products, l)
		case enums.LineTypeBundle:
			bundles = append(bundles, l)
		}
	}

	if len(products) > 0 {
		b.WriteString("\n🛍️ *Productos:*\n")
		for i, l := range products {
			writeLine(&b, i, l)
			if l.Product != nil && l.Product.SKU != "" {
				fmt.Fprintf(&b, "   • SKU: %s\n", l.Product.SKU)
			}
			b.WriteString("\n")
		}
	}

	if len(bundles) > 0 {
		b.WriteString("\n🎁 *Combos:*\n")
		for i, l := range bundles {
			writeLine(&b, i, l)
			if l.Bundle != nil {
				if savings := money.Savings(l.Bundle.OriginalPrice, l.UnitPrice); savings > 0 {
					fmt.Fprintf(&b, "   • Ahorro: %s\n", money.Format(savings))
				}
				if l.Bundle.SKU != "" {
					fmt.Fprintf(&b, "   • SKU: %s\n", l.Bundle.SKU)
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("💰 *Resumen del Pedido:*\n")
	fmt.Fprintf(&b, "• Subtotal: %s\n", money.Format(summary.Subtotal))
	if summary.Discount > 0 {
		fmt.Fprintf(&b, "• Descuento: -%s\n", money.Format(summary.Discount))
	}
	fmt.Fprintf(&b, "• Total: %s\n", money.Format(summary.Total))
	fmt.Fprintf(&b, "• Total de artículos: %d\n\n", summary.ItemCount)

	fmt.Fprintf(&b, "⏰ *Fecha del pedido:* %s\n\n", at.Format(timestampLayout))
	b.WriteString("✨ *Gracias por tu compra!*")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(b, "• %s: %s\n", label, value)
	}
}

func writeLine(b *strings.Builder, idx int, l cart.Line) {
	fmt.Fprintf(b, "%d. %s\n", idx+1, l.Name())
	fmt.Fprintf(b, "   • Cantidad: %d\n", l.Quantity)
	fmt.Fprintf(b, "   • Precio unitario: %s\n", money.Format(l.UnitPrice))
	fmt.Fprintf(b, "   • Subtotal: %s\n", money.Format(l.Total))
}
