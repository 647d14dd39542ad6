package application

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/ports"

	"github.com/rs/zerolog"
)

// MappingImporter loads the channel/title to product lookup tables from a
// delimited text file, one `title : productId : channelId` entry per line.
type MappingImporter struct {
	mappings ports.MappingRepository
	logger   zerolog.Logger
}

// NewMappingImporter creates a new mapping importer
func NewMappingImporter(mappings ports.MappingRepository, logger zerolog.Logger) *MappingImporter {
	return &MappingImporter{
		mappings: mappings,
		logger:   logger,
	}
}

// ImportFile imports mappings from the given file path
func (i *MappingImporter) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import reads mapping lines from r. Blank lines and lines starting with #
// are skipped; malformed lines are logged and skipped without aborting the
// rest of the import.
func (i *MappingImporter) Import(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	imported := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 3 {
			i.logger.Warn().Int("line", lineNo).Msg("Skipping malformed mapping line")
			continue
		}

		title := domain.NormalizeTitle(parts[0])
		productID := strings.TrimSpace(parts[1])
		channelID := strings.TrimSpace(parts[2])

		if title == "" || productID == "" {
			i.logger.Warn().Int("line", lineNo).Msg("Skipping mapping line with empty title or product id")
			continue
		}

		if err := i.mappings.UpsertProductMapping(ctx, &domain.ProductMapping{
			Title:     title,
			ProductID: productID,
			ChannelID: channelID,
		}); err != nil {
			return imported, fmt.Errorf("failed to import product mapping at line %d: %w", lineNo, err)
		}

		if channelID != "" {
			if err := i.mappings.UpsertChannelMapping(ctx, &domain.ChannelMapping{
				ChannelID: channelID,
				ProductID: productID,
			}); err != nil {
				return imported, fmt.Errorf("failed to import channel mapping at line %d: %w", lineNo, err)
			}
		}

		imported++
	}

	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("failed to read mapping file: %w", err)
	}

	i.logger.Info().Int("imported", imported).Msg("Mapping import complete")
	return imported, nil
}
