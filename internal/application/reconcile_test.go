package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"statuspulse-integration-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatClient struct {
	channels map[string][]domain.Channel
	err      error
}

func (f *fakeChatClient) ListGuildChannels(_ context.Context, guildID string) ([]domain.Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.channels[guildID], nil
}

type fakeMappingRepo struct {
	mu        sync.Mutex
	byChannel map[string]string
	byTitle   map[string]string
	err       error
	lookups   int
}

func (f *fakeMappingRepo) GetByChannelID(_ context.Context, channelID string) (*domain.ChannelMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if productID, ok := f.byChannel[channelID]; ok {
		return &domain.ChannelMapping{ChannelID: channelID, ProductID: productID}, nil
	}
	return nil, nil
}

func (f *fakeMappingRepo) GetByTitle(_ context.Context, title string) (*domain.ProductMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if productID, ok := f.byTitle[title]; ok {
		return &domain.ProductMapping{Title: title, ProductID: productID}, nil
	}
	return nil, nil
}

func (f *fakeMappingRepo) UpsertChannelMapping(_ context.Context, m *domain.ChannelMapping) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byChannel == nil {
		f.byChannel = make(map[string]string)
	}
	f.byChannel[m.ChannelID] = m.ProductID
	return nil
}

func (f *fakeMappingRepo) UpsertProductMapping(_ context.Context, m *domain.ProductMapping) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byTitle == nil {
		f.byTitle = make(map[string]string)
	}
	f.byTitle[m.Title] = m.ProductID
	return nil
}

type fakeStatusSink struct {
	mu      sync.Mutex
	pushes  []domain.StatusUpdate
	failing bool
}

func (f *fakeStatusSink) PushStatus(_ context.Context, update *domain.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("sink unavailable")
	}
	f.pushes = append(f.pushes, *update)
	return nil
}

func (f *fakeStatusSink) pushed() []domain.StatusUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.StatusUpdate(nil), f.pushes...)
}

func newTestReconciler(chat *fakeChatClient, repo *fakeMappingRepo, sink *fakeStatusSink) *Reconciler {
	return NewReconciler(chat, repo, sink, zerolog.Nop(), []string{"guild-1"}, time.Minute)
}

func TestReconcilerPushesOnTagChange(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {{ID: "c1", Name: "🟢 order-status", IsText: true}},
	}}
	repo := &fakeMappingRepo{byChannel: map[string]string{"c1": "p-100"}}
	sink := &fakeStatusSink{}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())

	pushes := sink.pushed()
	require.Len(t, pushes, 1)
	assert.Equal(t, domain.TagWorking, pushes[0].Tag)
	assert.Equal(t, "p-100", pushes[0].ProductID)
	assert.Equal(t, "🟢 order-status", pushes[0].Title)

	// Same tag on the next cycle is a no-op.
	r.RunCycle(context.Background())
	assert.Len(t, sink.pushed(), 1)

	// A changed glyph is pushed again.
	chat.channels["guild-1"][0].Name = "🔴 order-status"
	r.RunCycle(context.Background())
	pushes = sink.pushed()
	require.Len(t, pushes, 2)
	assert.Equal(t, domain.TagDown, pushes[1].Tag)
}

func TestReconcilerResolvesByNormalizedTitle(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {{ID: "c1", Name: "🟢 Order-Status", IsText: true}},
	}}
	repo := &fakeMappingRepo{byTitle: map[string]string{"order-status": "p-200"}}
	sink := &fakeStatusSink{}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())

	pushes := sink.pushed()
	require.Len(t, pushes, 1)
	assert.Equal(t, "p-200", pushes[0].ProductID)
}

func TestReconcilerIgnoresUnmappedChannelPermanently(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {{ID: "c1", Name: "🟢 nobody-knows-me", IsText: true}},
	}}
	repo := &fakeMappingRepo{}
	sink := &fakeStatusSink{}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())
	require.True(t, r.IsIgnored("c1"))
	assert.Empty(t, sink.pushed())

	// A mapping appearing later does not revive the channel.
	repo.mu.Lock()
	repo.byChannel = map[string]string{"c1": "p-300"}
	lookupsAfterFirst := repo.lookups
	repo.mu.Unlock()

	r.RunCycle(context.Background())
	r.RunCycle(context.Background())

	repo.mu.Lock()
	lookupsNow := repo.lookups
	repo.mu.Unlock()
	assert.Equal(t, lookupsAfterFirst, lookupsNow, "ignored channel must not be looked up again")
	assert.Empty(t, sink.pushed())
}

func TestReconcilerUnknownTagDoesNotTouchCache(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {{ID: "c1", Name: "general-chat", IsText: true}},
	}}
	repo := &fakeMappingRepo{byChannel: map[string]string{"c1": "p-400"}}
	sink := &fakeStatusSink{}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())
	assert.Empty(t, sink.pushed())

	// A later recognizable name still registers as a change.
	chat.channels["guild-1"][0].Name = "🟢 general-chat"
	r.RunCycle(context.Background())
	require.Len(t, sink.pushed(), 1)
}

func TestReconcilerRetriesFailedPush(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {{ID: "c1", Name: "🟢 order-status", IsText: true}},
	}}
	repo := &fakeMappingRepo{byChannel: map[string]string{"c1": "p-500"}}
	sink := &fakeStatusSink{failing: true}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())
	assert.Empty(t, sink.pushed())

	// The cache was not advanced on failure, so the same tag is retried.
	sink.mu.Lock()
	sink.failing = false
	sink.mu.Unlock()

	r.RunCycle(context.Background())
	require.Len(t, sink.pushed(), 1)
	assert.Equal(t, domain.TagWorking, sink.pushed()[0].Tag)
}

func TestReconcilerStorageFailureIsTransient(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {{ID: "c1", Name: "🟢 order-status", IsText: true}},
	}}
	repo := &fakeMappingRepo{err: domain.ErrStorageUnavailable}
	sink := &fakeStatusSink{}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())
	assert.False(t, r.IsIgnored("c1"), "storage failure must not ignore the channel")

	repo.mu.Lock()
	repo.err = nil
	repo.byChannel = map[string]string{"c1": "p-600"}
	repo.mu.Unlock()

	r.RunCycle(context.Background())
	require.Len(t, sink.pushed(), 1)
}

func TestReconcilerSkipsNonTextChannels(t *testing.T) {
	chat := &fakeChatClient{channels: map[string][]domain.Channel{
		"guild-1": {
			{ID: "v1", Name: "🟢 voice-lounge", IsText: false},
			{ID: "c1", Name: "🟢 order-status", IsText: true},
		},
	}}
	repo := &fakeMappingRepo{byChannel: map[string]string{"v1": "p-700", "c1": "p-701"}}
	sink := &fakeStatusSink{}
	r := newTestReconciler(chat, repo, sink)

	r.RunCycle(context.Background())

	pushes := sink.pushed()
	require.Len(t, pushes, 1)
	assert.Equal(t, "p-701", pushes[0].ProductID)
}
