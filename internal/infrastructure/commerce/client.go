package commerce

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

const statusTagPrefix = "status:"

type client struct {
	shopDomain  string
	accessToken string
	app         goshopify.App
	logger      zerolog.Logger
}

// NewClient creates a commerce platform adapter bound to a single shop with a
// static admin access token.
func NewClient(apiKey, apiSecret, shopDomain, accessToken string, logger zerolog.Logger) ports.CommerceClient {
	app := goshopify.App{
		ApiKey:    apiKey,
		ApiSecret: apiSecret,
	}
	return &client{
		shopDomain:  shopDomain,
		accessToken: accessToken,
		app:         app,
		logger:      logger,
	}
}

func (c *client) createClient() (*goshopify.Client, error) {
	shopifyClient, err := goshopify.NewClient(c.app, c.shopDomain, c.accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return shopifyClient, nil
}

// SetProductStatusTag rewrites the product's status tag, leaving all other
// tags untouched.
func (c *client) SetProductStatusTag(ctx context.Context, productID string, tag domain.Tag) error {
	id, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", productID, domain.ErrInvalidInput)
	}

	shopifyClient, err := c.createClient()
	if err != nil {
		return err
	}

	product, err := shopifyClient.Product.Get(ctx, id, nil)
	if err != nil {
		return fmt.Errorf("failed to get product: %w: %v", domain.ErrUpstreamFailure, err)
	}

	product.Tags = RewriteStatusTags(product.Tags, tag)

	if _, err := shopifyClient.Product.Update(ctx, *product); err != nil {
		return fmt.Errorf("failed to update product: %w: %v", domain.ErrUpstreamFailure, err)
	}

	c.logger.Info().
		Str("productId", productID).
		Str("tag", tag.String()).
		Msg("Updated product status tag")

	return nil
}

// OrderExists checks whether the commerce platform knows the given order id
func (c *client) OrderExists(ctx context.Context, orderID string) (bool, error) {
	id, err := strconv.ParseUint(orderID, 10, 64)
	if err != nil {
		return false, fmt.Errorf("invalid order id %q: %w", orderID, domain.ErrInvalidInput)
	}

	shopifyClient, err := c.createClient()
	if err != nil {
		return false, err
	}

	if _, err := shopifyClient.Order.Get(ctx, id, nil); err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "404") || strings.Contains(errStr, "not found") {
			return false, nil
		}
		return false, fmt.Errorf("failed to get order: %w: %v", domain.ErrUpstreamFailure, err)
	}

	return true, nil
}

// RewriteStatusTags replaces any status:* entry in a comma-separated tag list
// with the given tag, preserving every other tag.
func RewriteStatusTags(tags string, tag domain.Tag) string {
	kept := make([]string, 0, 4)
	for _, t := range strings.Split(tags, ",") {
		t = strings.TrimSpace(t)
		if t == "" || strings.HasPrefix(t, statusTagPrefix) {
			continue
		}
		kept = append(kept, t)
	}
	kept = append(kept, statusTagPrefix+tag.String())
	return strings.Join(kept, ", ")
}
