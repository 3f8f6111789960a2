package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Initsogar/gutenberg/internal/dto"
	"github.com/Initsogar/gutenberg/pkg/treecache"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// PatternNotifier pushes pattern change notices to connected editors.
// Implemented by the websocket hub; nil disables notifications.
type PatternNotifier interface {
	BroadcastPatternUpdated(patternId uuid.UUID)
}

type IInvalidationService interface {
	Consume(ctx context.Context) error
}

type invalidationService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     *treecache.Store
	notifier  PatternNotifier
}

func NewInvalidationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	store *treecache.Store,
	notifier PatternNotifier,
) IInvalidationService {
	return &invalidationService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
		notifier:  notifier,
	}
}

func (is *invalidationService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *invalidationService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishInvalidateTreeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal invalidation message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Invalidating cached tree for pattern %s", payload.PatternId)
	is.store.Invalidate(ctx, payload.PatternId)

	if is.notifier != nil {
		is.notifier.BroadcastPatternUpdated(payload.PatternId)
	}

	msg.Ack()
}
