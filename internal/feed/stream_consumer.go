package feed

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedHub is the websocket side of the fan-out: the consumer forwards every
// stream event to it.
type FeedHub interface {
	BroadcastToBill(billID string, event *Event)
}

// StreamConsumer reads a bill's feed stream through a consumer group and
// forwards events to the hub.
type StreamConsumer struct {
	rdb          *redis.Client
	ctx          context.Context
	consumerName string
	hub          FeedHub

	mu      sync.Mutex
	cancels map[string]context.CancelFunc // billID -> stop for its consume loop
}

// NewStreamConsumer creates a StreamConsumer instance
func NewStreamConsumer(hub FeedHub) *StreamConsumer {
	rdb := GetRedisClient()
	if rdb == nil {
		return nil
	}

	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("consumer-%s-%d", hostname, os.Getpid())

	return &StreamConsumer{
		rdb:          rdb,
		ctx:          GetContext(),
		consumerName: consumerName,
		hub:          hub,
		cancels:      make(map[string]context.CancelFunc),
	}
}

// StartConsumerGroup begins consuming a bill's feed stream. Starting a second
// consumer for the same bill replaces the first.
func (sc *StreamConsumer) StartConsumerGroup(billID string) error {
	if sc == nil || sc.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	streamKey := StreamKey(billID)
	groupName := GroupName(billID)

	err := sc.rdb.XGroupCreateMkStream(sc.ctx, streamKey, groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		log.Printf("Failed to create consumer group for bill %s: %v", billID, err)
	}

	loopCtx, cancel := context.WithCancel(sc.ctx)
	sc.mu.Lock()
	if prev, ok := sc.cancels[billID]; ok {
		prev()
	}
	sc.cancels[billID] = cancel
	sc.mu.Unlock()

	go sc.consumeLoop(loopCtx, billID, streamKey, groupName)
	return nil
}

// StopConsumerGroup stops the consume loop for a bill
func (sc *StreamConsumer) StopConsumerGroup(billID string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if cancel, ok := sc.cancels[billID]; ok {
		cancel()
		delete(sc.cancels, billID)
	}
}

// consumeLoop reads from the stream and forwards events to the hub
func (sc *StreamConsumer) consumeLoop(loopCtx context.Context, billID, streamKey, groupName string) {
	for {
		if loopCtx.Err() != nil {
			return
		}

		streams, err := sc.rdb.XReadGroup(loopCtx, &redis.XReadGroupArgs{
			Group:    groupName,
			Consumer: sc.consumerName,
			Streams:  []string{streamKey, ">"},
			Count:    100,
			Block:    time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			if loopCtx.Err() != nil {
				return
			}
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				if err := sc.processMessage(billID, message); err != nil {
					log.Printf("Failed to process feed message %s: %v", message.ID, err)
					continue
				}
				if err := sc.rdb.XAck(sc.ctx, streamKey, groupName, message.ID).Err(); err != nil {
					log.Printf("Failed to ack feed message %s: %v", message.ID, err)
				}
			}
		}
	}
}

// processMessage forwards a stream message to the websocket hub
func (sc *StreamConsumer) processMessage(billID string, message redis.XMessage) error {
	eventData, ok := message.Values["data"].(string)
	if !ok {
		return fmt.Errorf("invalid message format: missing data field")
	}

	event, err := UnmarshalEvent(eventData)
	if err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	sc.hub.BroadcastToBill(billID, event)
	return nil
}
