package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Channel is the pub/sub channel order events are published on.
const Channel = "orders:events"

// Envelope is the JSON payload published for every event.
type Envelope struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	OrderID int64  `json:"order_id"`
	AgentID int64  `json:"agent_id,omitempty"`
	Status  string `json:"status,omitempty"`
	At      string `json:"at"`
}

// RedisPublisher publishes order events on a Redis pub/sub channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) publish(ctx context.Context, env Envelope) error {
	env.EventID = uuid.NewString()
	env.At = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return p.client.Publish(ctx, Channel, payload).Err()
}

func (p *RedisPublisher) PublishAssignment(ctx context.Context, orderID, agentID int64) error {
	return p.publish(ctx, Envelope{Type: EventAssignment, OrderID: orderID, AgentID: agentID})
}

func (p *RedisPublisher) PublishOrderUpdate(ctx context.Context, orderID int64, status string) error {
	return p.publish(ctx, Envelope{Type: EventOrderUpdate, OrderID: orderID, Status: status})
}
