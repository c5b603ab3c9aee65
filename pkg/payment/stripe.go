package payment

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

const (
	StatusPaid              = "paid"
	StatusUnpaid            = "unpaid"
	StatusNoPaymentRequired = "no_payment_required"
)

// Session is the slice of a Stripe checkout session the booking flow
// needs: payment outcome plus the travel metadata attached at checkout.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
	Metadata      map[string]string
}

type CheckoutParams struct {
	CustomerEmail string
	ProductName   string
	ProductImage  string
	UnitAmount    int64 // per seat, in paise
	Quantity      int64
	Metadata      map[string]string
}

type StripeService struct {
	successURL string
	cancelURL  string
}

func NewStripeService(secretKey, frontendURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		successURL: frontendURL + "/successPay?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  frontendURL + "/bookNow",
	}
}

func (s *StripeService) CreateSession(params CheckoutParams) (*Session, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		CustomerEmail: stripe.String(params.CustomerEmail),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyINR)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:   stripe.String(params.ProductName),
						Images: stripe.StringSlice([]string{params.ProductImage}),
					},
					UnitAmount: stripe.Int64(params.UnitAmount),
				},
				Quantity: stripe.Int64(params.Quantity),
			},
		},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}

	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	sess, err := session.New(sessionParams)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

func (s *StripeService) RetrieveSession(sessionID string) (*Session, error) {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Metadata:      sess.Metadata,
	}, nil
}
