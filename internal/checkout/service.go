package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
)

const maxCustomMessageLength = 2000

// Handoff is a prepared messaging link. Opening it is left to the client.
type Handoff struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
}

type cartSummaries interface {
	Summary(ctx context.Context, sessionID string) cart.Summary
}

// ServiceParams groups dependencies for the checkout handoff service.
type ServiceParams struct {
	Config  config.WhatsAppConfig
	Carts   cartSummaries
	Logger  *logger.Logger
	Metrics *metrics.Storefront
	Clock   func() time.Time
}

// Service builds WhatsApp handoff links.
type Service interface {
	CartHandoff(ctx context.Context, sessionID string, customer *Customer) Handoff
	BuildWhatsAppHandoff(summary cart.Summary, customer *Customer) Handoff
	CustomMessage(ctx context.Context, text string) (Handoff, error)
}

type service struct {
	baseURL  string
	phone    string
	location *time.Location
	carts    cartSummaries
	logg     *logger.Logger
	metrics  *metrics.Storefront
	now      func() time.Time
}

// NewService validates the messaging configuration and builds the service.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(params.Config.BaseURL), "/")
	if baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid whatsapp base url")
	}
	phone := strings.TrimSpace(params.Config.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp phone is required")
	}
	tz := params.Config.Timezone
	if tz == "" {
		tz = "America/Bogota"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid whatsapp timezone")
	}

	svc := &service{
		baseURL:  baseURL,
		phone:    phone,
		location: loc,
		carts:    params.Carts,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      params.Clock,
	}
	if svc.logg == nil {
		svc.logg = logger.Nop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// CartHandoff formats the session's current cart.
func (s *service) CartHandoff(ctx context.Context, sessionID string, customer *Customer) Handoff {
	summary := s.carts.Summary(ctx, sessionID)
	handoff := s.BuildWhatsAppHandoff(summary, customer)

	logCtx := s.logg.WithFields(s.logg.WithSessionID(ctx, sessionID), map[string]any{
		"item_count": summary.ItemCount,
		"total":      summary.Total,
	})
	s.logg.Info(logCtx, "checkout.whatsapp.handoff")
	return handoff
}

// BuildWhatsAppHandoff formats summary into the order message and link. An
// empty cart still produces the base template.
func (s *service) BuildWhatsAppHandoff(summary cart.Summary, customer *Customer) Handoff {
	msg := formatOrderMessage(summary, customer, s.now().In(s.location))
	s.metrics.IncHandoff("cart")
	return s.handoff(msg)
}

// CustomMessage links a free-form message.
func (s *service) CustomMessage(ctx context.Context, text string) (Handoff, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Handoff{}, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len([]rune(text)) > maxCustomMessageLength {
		return Handoff{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("message exceeds %d characters", maxCustomMessageLength))
	}
	s.metrics.IncHandoff("custom")
	s.logg.Info(s.logg.WithField(ctx, "length", len(text)), "checkout.whatsapp.custom")
	return s.handoff(text), nil
}

func (s *service) handoff(msg string) Handoff {
	return Handoff{
		URL:     fmt.Sprintf("%s/%s?text=%s", s.baseURL, s.phone, escapeText(msg)),
		Message: msg,
		Phone:   s.phone,
	}
}

// escapeText percent-encodes like a URI component: spaces become %20.
func escapeText(msg string) string {
	return strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}
