package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
)

// InvoiceCreator creates one invoice for an order.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, fields domain.NormalizedFields) domain.AdapterResult
}

// CardCreator creates one task card for an order.
type CardCreator interface {
	CreateCard(ctx context.Context, fields domain.NormalizedFields) domain.AdapterResult
}

// ContactUpserter creates or updates the customer's CRM contact.
type ContactUpserter interface {
	UpsertContact(ctx context.Context, fields domain.NormalizedFields) domain.AdapterResult
}

// MemberTagger adds one tag to the customer's mailing-list membership.
type MemberTagger interface {
	AddTag(ctx context.Context, fields domain.NormalizedFields, tag string) domain.AdapterResult
}

// EmailSender delivers one notification email.
type EmailSender interface {
	Send(to, subject, body string) domain.AdapterResult
}

// Processor fans one order out to every integration in a fixed sequence.
// It holds no mutable state and is safe for concurrent Process calls.
type Processor struct {
	invoices InvoiceCreator
	cards    CardCreator
	contacts ContactUpserter
	tagger   MemberTagger
	mailer   EmailSender
	coupon   config.CouponConfig
	logger   *zap.Logger
}

// NewProcessor creates a new order processor
func NewProcessor(
	invoices InvoiceCreator,
	cards CardCreator,
	contacts ContactUpserter,
	tagger MemberTagger,
	mailer EmailSender,
	coupon config.CouponConfig,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		invoices: invoices,
		cards:    cards,
		contacts: contacts,
		tagger:   tagger,
		mailer:   mailer,
		coupon:   coupon,
		logger:   logger,
	}
}

// Process runs one order through extraction, the three unconditional
// integrations, and the threshold-driven notification. Every integration
// runs regardless of earlier outcomes: a simulated or failed adapter never
// prevents the ones after it.
func (p *Processor) Process(ctx context.Context, order domain.Order) domain.ProcessingResult {
	result := domain.ProcessingResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}

	fields := ExtractFields(order)
	result.Fields = fields

	result.Harvest = p.invoices.CreateInvoice(ctx, fields)
	result.Trello = p.cards.CreateCard(ctx, fields)
	result.Zoho = p.contacts.UpsertContact(ctx, fields)

	// Strictly greater than: an order exactly at the threshold takes the
	// thank-you branch.
	if fields.OrderValue > p.coupon.Threshold {
		subject, body := buildCouponEmail(fields.CustomerFirstName, p.coupon.Code)
		email := p.mailer.Send(fields.CustomerEmail, subject, body)
		result.CouponEmail = &email

		tag := p.tagger.AddTag(ctx, fields, p.coupon.HighOrderTag)
		result.Mailchimp = &tag
	} else {
		subject, body := buildThankYouEmail(fields.CustomerFirstName)
		email := p.mailer.Send(fields.CustomerEmail, subject, body)
		result.ThankYouEmail = &email
	}

	result.FinishedAt = time.Now().UTC()

	p.logger.Info("Order processed",
		zap.String("run_id", result.RunID),
		zap.String("order_number", fields.OrderNumber),
		zap.Float64("order_value", fields.OrderValue),
		zap.String("harvest", string(result.Harvest.Status)),
		zap.String("trello", string(result.Trello.Status)),
		zap.String("zoho", string(result.Zoho.Status)),
		zap.Bool("high_value", result.CouponEmail != nil),
	)

	return result
}
