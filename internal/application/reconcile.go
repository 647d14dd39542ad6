package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/infrastructure/metrics"
	"statuspulse-integration-layer/internal/ports"

	"github.com/rs/zerolog"
)

// channelState is the reconciler-owned record for a single channel. A channel
// is either active or permanently ignored; once ignored it is never evaluated
// again until the process restarts.
type channelState struct {
	lastTag domain.Tag
	ignored bool
}

// Reconciler periodically scans all text channels of the monitored guilds,
// classifies their names and pushes status changes to the product-status
// endpoint.
type Reconciler struct {
	chat     ports.ChatClient
	mappings ports.MappingRepository
	sink     ports.StatusSink
	logger   zerolog.Logger

	guildIDs []string
	interval time.Duration

	mu      sync.Mutex
	states  map[string]*channelState
	running atomic.Bool
}

// NewReconciler creates a new reconciler for the given guilds
func NewReconciler(
	chat ports.ChatClient,
	mappings ports.MappingRepository,
	sink ports.StatusSink,
	logger zerolog.Logger,
	guildIDs []string,
	interval time.Duration,
) *Reconciler {
	return &Reconciler{
		chat:     chat,
		mappings: mappings,
		sink:     sink,
		logger:   logger,
		guildIDs: guildIDs,
		interval: interval,
		states:   make(map[string]*channelState),
	}
}

// Run drives the loop until the context is cancelled. Ticks that fire while a
// cycle is still running are skipped, so cycles never overlap.
func (r *Reconciler) Run(ctx context.Context) {
	r.logger.Info().
		Strs("guilds", r.guildIDs).
		Dur("interval", r.interval).
		Msg("Starting reconciliation loop")

	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Reconciliation loop stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Reconciler) tick(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		metrics.CyclesSkipped.Inc()
		r.logger.Warn().Msg("Previous cycle still running, skipping tick")
		return
	}
	defer r.running.Store(false)
	r.RunCycle(ctx)
}

// RunCycle performs one full pass over all monitored channels. Channels are
// reconciled concurrently; a single channel's failure is logged and never
// affects its siblings.
func (r *Reconciler) RunCycle(ctx context.Context) {
	start := time.Now()
	var wg sync.WaitGroup

	for _, guildID := range r.guildIDs {
		channels, err := r.chat.ListGuildChannels(ctx, guildID)
		if err != nil {
			r.logger.Error().Err(err).Str("guildId", guildID).Msg("Failed to list guild channels")
			continue
		}

		for _, ch := range channels {
			if !ch.IsText {
				continue
			}
			wg.Add(1)
			go func(ch domain.Channel) {
				defer wg.Done()
				if err := r.reconcileChannel(ctx, ch); err != nil {
					r.logger.Error().
						Err(err).
						Str("channelId", ch.ID).
						Str("channel", ch.Name).
						Msg("Failed to reconcile channel")
				}
			}(ch)
		}
	}

	wg.Wait()
	metrics.CyclesTotal.Inc()
	r.logger.Info().Dur("took", time.Since(start)).Msg("Reconcile cycle complete")
}

func (r *Reconciler) reconcileChannel(ctx context.Context, ch domain.Channel) error {
	r.mu.Lock()
	state, ok := r.states[ch.ID]
	if !ok {
		state = &channelState{}
		r.states[ch.ID] = state
	}
	ignored := state.ignored
	lastTag := state.lastTag
	r.mu.Unlock()

	if ignored {
		return nil
	}
	metrics.ChannelsEvaluated.Inc()

	tag := domain.ClassifyChannelName(ch.Name)
	if tag == lastTag {
		return nil
	}

	productID, err := r.resolveProductID(ctx, ch)
	if err != nil {
		// Storage failure is transient; the channel stays active and is
		// retried on the next cycle.
		return fmt.Errorf("resolve product for channel %s: %w", ch.ID, err)
	}
	if productID == "" {
		r.mu.Lock()
		state.ignored = true
		r.mu.Unlock()
		metrics.ChannelsIgnored.Inc()
		r.logger.Info().
			Str("channelId", ch.ID).
			Str("channel", ch.Name).
			Msg("No product mapping for channel, ignoring permanently")
		return nil
	}

	if tag == domain.TagUnknown {
		// Not reportable; the cache keeps the old tag so a later known
		// tag still registers as a change.
		return nil
	}

	update := &domain.StatusUpdate{Tag: tag, Title: ch.Name, ProductID: productID}
	if err := r.sink.PushStatus(ctx, update); err != nil {
		metrics.StatusPushes.WithLabelValues("error").Inc()
		// The cache is only advanced after a successful push, so this
		// update is retried on the next cycle.
		return fmt.Errorf("push status for channel %s: %w", ch.ID, err)
	}
	metrics.StatusPushes.WithLabelValues("ok").Inc()

	r.mu.Lock()
	state.lastTag = tag
	r.mu.Unlock()

	r.logger.Info().
		Str("channelId", ch.ID).
		Str("productId", productID).
		Str("tag", tag.String()).
		Msg("Pushed status change")

	return nil
}

// resolveProductID tries the channel-id mapping first, then falls back to a
// lookup by the normalized channel name.
func (r *Reconciler) resolveProductID(ctx context.Context, ch domain.Channel) (string, error) {
	channelMapping, err := r.mappings.GetByChannelID(ctx, ch.ID)
	if err != nil {
		return "", err
	}
	if channelMapping != nil {
		return channelMapping.ProductID, nil
	}

	productMapping, err := r.mappings.GetByTitle(ctx, domain.NormalizeTitle(ch.Name))
	if err != nil {
		return "", err
	}
	if productMapping != nil {
		return productMapping.ProductID, nil
	}

	return "", nil
}

// IsIgnored reports whether a channel has been permanently excluded.
func (r *Reconciler) IsIgnored(channelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[channelID]
	return ok && state.ignored
}
