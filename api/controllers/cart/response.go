package cart

import (
	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/pkg/money"
)

type cartResponse struct {
	cart.Summary
	FormattedTotal string `json:"formatted_total"`
}

func newCartResponse(summary cart.Summary) cartResponse {
	if summary.Lines == nil {
		summary.Lines = []cart.Line{}
	}
	return cartResponse{Summary: summary, FormattedTotal: money.Format(summary.Total)}
}
