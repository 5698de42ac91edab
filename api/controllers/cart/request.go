package cart

import (
	"strings"

	cartdto "github.com/angelmondragon/lushka-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

func toAddItemInput(payload cartdto.AddItemRequest) cart.AddItemInput {
	return cart.AddItemInput{
		ItemID:   strings.TrimSpace(payload.ItemID),
		Type:     enums.LineType(strings.ToLower(strings.TrimSpace(payload.Type))),
		Quantity: payload.Quantity,
	}
}
