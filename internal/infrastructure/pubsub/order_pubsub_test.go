package pubsub

import (
	"context"
	"testing"
	"time"

	"statuspulse-integration-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPubSubDeliversToSubscriber(t *testing.T) {
	ps := NewOrderPubSub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := ps.Subscribe(ctx, nil)
	order := &domain.Order{SessionID: "sess-1", ShopID: "shop-1"}

	ps.PublishOrder(order)

	select {
	case got := <-sub.Events:
		assert.Equal(t, "sess-1", got.SessionID)
	case <-time.After(time.Second):
		t.Fatal("no order delivered")
	}
}

func TestOrderPubSubShopFilter(t *testing.T) {
	ps := NewOrderPubSub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := ps.Subscribe(ctx, &OrderEventFilter{ShopID: "shop-1"})

	ps.PublishOrder(&domain.Order{SessionID: "other", ShopID: "shop-2"})
	ps.PublishOrder(&domain.Order{SessionID: "mine", ShopID: "shop-1"})

	select {
	case got := <-sub.Events:
		assert.Equal(t, "mine", got.SessionID)
	case <-time.After(time.Second):
		t.Fatal("no order delivered")
	}

	select {
	case got := <-sub.Events:
		t.Fatalf("unexpected extra delivery: %s", got.SessionID)
	default:
	}
}

func TestOrderPubSubUnsubscribeOnCancel(t *testing.T) {
	ps := NewOrderPubSub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	sub := ps.Subscribe(ctx, nil)
	require.Equal(t, 1, ps.GetStats()["active_subscriptions"])

	cancel()
	select {
	case <-sub.Done:
	case <-time.After(time.Second):
		t.Fatal("subscription not cleaned up after cancel")
	}
	assert.Equal(t, 0, ps.GetStats()["active_subscriptions"])
}
