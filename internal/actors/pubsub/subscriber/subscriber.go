package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/rbroggi/randomusersvc/internal/core/model"
	"github.com/rbroggi/randomusersvc/internal/core/ports"
)

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription
	Subscription *pubsub.Subscription

	// UserEventHandler is a event handler
	UserEventHandler ports.UserEventHandler
}

// Subscriber is a pubsub async subscriber
type Subscriber struct {
	subscription     *pubsub.Subscription
	userEventHandler ports.UserEventHandler
}

// NewSubscriber creates a subscriber
func NewSubscriber(args SubscriberArgs) *Subscriber {
	return &Subscriber{
		subscription:     args.Subscription,
		userEventHandler: args.UserEventHandler,
	}
}

// Consume starts the subscriber. This is a blocking method and should be started in it's own go-routine.
// The way to terminate the method is to cancel the context in input.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {

		userEvent, err := decodeMsgIntoUserEvent(msg)
		if err != nil {
			log.WithError(err).Error("error decoding message into user-event")
			msg.Nack()
			return
		}

		if err := s.userEventHandler.Handle(ctx, *userEvent); err != nil {
			log.WithError(err).Error("error in user event handler")
			msg.Nack()
		} else {
			msg.Ack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

func decodeMsgIntoUserEvent(msg *pubsub.Message) (*model.UserEvent, error) {
	if msg == nil {
		return nil, errors.New("cannot decode nil pubsub msg")
	}
	userEvent := new(model.UserEvent)
	if err := json.Unmarshal(msg.Data, userEvent); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if userEvent.ID == "" {
		userEvent.ID = msg.ID
	}
	return userEvent, nil
}
