package application

import (
	"context"
	"fmt"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ProductTagService applies inbound status updates to the commerce platform.
type ProductTagService struct {
	commerce ports.CommerceClient
	logger   zerolog.Logger
}

// NewProductTagService creates a new product tag service
func NewProductTagService(commerce ports.CommerceClient, logger zerolog.Logger) *ProductTagService {
	return &ProductTagService{
		commerce: commerce,
		logger:   logger,
	}
}

// UpdateTag rewrites the status tag of the given product. Unknown is not a
// reportable status and is rejected.
func (s *ProductTagService) UpdateTag(ctx context.Context, productID string, tag domain.Tag) error {
	if productID == "" {
		return fmt.Errorf("product id is required: %w", domain.ErrInvalidInput)
	}
	if !tag.IsValid() || tag == domain.TagUnknown {
		return fmt.Errorf("tag %q is not reportable: %w", tag, domain.ErrInvalidInput)
	}

	if err := s.commerce.SetProductStatusTag(ctx, productID, tag); err != nil {
		return err
	}

	s.logger.Info().
		Str("productId", productID).
		Str("tag", tag.String()).
		Msg("Product status tag updated")

	return nil
}
