package stripe

import (
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// Client wraps the Stripe SDK behind the four calls this backend makes.
// One instance is constructed in main and injected into the handlers; the
// api packages declare their own narrow interfaces over it so tests can
// substitute fakes.
type Client struct {
	api *client.API
}

func New(secretKey string) *Client {
	return &Client{api: client.New(secretKey, nil)}
}

func (c *Client) NewCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	return c.api.Customers.New(params)
}

func (c *Client) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}

func (c *Client) GetSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	return c.api.Subscriptions.Get(id, params)
}

func (c *Client) UpdateSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	return c.api.Subscriptions.Update(id, params)
}
