package pubsub

import (
	"context"
	"fmt"
	"sync"

	"statuspulse-integration-layer/internal/domain"

	"github.com/rs/zerolog"
)

// OrderEventChannel represents a subscription channel
type OrderEventChannel struct {
	ID     string
	Filter *OrderEventFilter
	Events chan *domain.Order
	Done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// OrderEventFilter filters completed-order events
type OrderEventFilter struct {
	ShopID string // Filter by shop id
}

// OrderPubSub fans completed orders out to in-process subscribers, such as
// the automation forwarder.
type OrderPubSub struct {
	mu       sync.RWMutex
	channels map[string]*OrderEventChannel
	logger   zerolog.Logger
	nextID   int64
	idMu     sync.Mutex
}

// NewOrderPubSub creates a new order pub/sub system
func NewOrderPubSub(logger zerolog.Logger) *OrderPubSub {
	return &OrderPubSub{
		channels: make(map[string]*OrderEventChannel),
		logger:   logger,
	}
}

// Subscribe creates a new subscription channel
func (ps *OrderPubSub) Subscribe(ctx context.Context, filter *OrderEventFilter) *OrderEventChannel {
	ps.idMu.Lock()
	id := ps.generateID()
	ps.idMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)

	channel := &OrderEventChannel{
		ID:     id,
		Filter: filter,
		Events: make(chan *domain.Order, 10), // Buffered channel
		Done:   make(chan struct{}),
		ctx:    subCtx,
		cancel: cancel,
	}

	ps.mu.Lock()
	ps.channels[id] = channel
	ps.mu.Unlock()

	ps.logger.Info().
		Str("channelId", id).
		Interface("filter", filter).
		Msg("Order subscription created")

	// Cleanup when context is cancelled
	go func() {
		<-subCtx.Done()
		ps.Unsubscribe(id)
	}()

	return channel
}

// Unsubscribe removes a subscription channel
func (ps *OrderPubSub) Unsubscribe(channelID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	channel, exists := ps.channels[channelID]
	if !exists {
		return
	}

	close(channel.Events)
	close(channel.Done)
	channel.cancel()
	delete(ps.channels, channelID)

	ps.logger.Info().
		Str("channelId", channelID).
		Msg("Order subscription removed")
}

// PublishOrder broadcasts a completed order to all matching subscribers
func (ps *OrderPubSub) PublishOrder(order *domain.Order) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	publishedCount := 0
	for _, channel := range ps.channels {
		if !ps.matchesFilter(order, channel.Filter) {
			continue
		}
		select {
		case channel.Events <- order:
			publishedCount++
		case <-channel.ctx.Done():
			// Channel is closed, skip
		default:
			// Channel buffer full, skip (non-blocking)
			ps.logger.Warn().
				Str("channelId", channel.ID).
				Str("sessionId", order.SessionID).
				Msg("Channel buffer full, dropping order event")
		}
	}

	if publishedCount > 0 {
		ps.logger.Debug().
			Str("sessionId", order.SessionID).
			Str("shopId", order.ShopID).
			Int("subscribers", publishedCount).
			Msg("Published order to subscribers")
	}
}

// matchesFilter checks if an order matches the subscription filter
func (ps *OrderPubSub) matchesFilter(order *domain.Order, filter *OrderEventFilter) bool {
	if filter == nil {
		return true // No filter, match all
	}
	if filter.ShopID != "" && order.ShopID != filter.ShopID {
		return false
	}
	return true
}

// generateID generates a unique channel ID
func (ps *OrderPubSub) generateID() string {
	ps.nextID++
	return fmt.Sprintf("channel-%d", ps.nextID)
}

// GetStats returns pub/sub statistics
func (ps *OrderPubSub) GetStats() map[string]interface{} {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return map[string]interface{}{
		"active_subscriptions": len(ps.channels),
	}
}
