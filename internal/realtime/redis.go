package realtime

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const notificationChannelPrefix = "notifications:"

// NewRedis creates a Redis client for pub/sub and token storage.
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)", addr)
	return rdb
}

// Publisher pushes notification payloads onto the user's Redis channel so
// every API instance can deliver them to its own sockets.
type Publisher struct {
	RDB *redis.Client
}

func (p *Publisher) Push(userID uuid.UUID, payload interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: marshal push payload: %v", err)
		return
	}
	if err := p.RDB.Publish(context.Background(), notificationChannelPrefix+userID.String(), b).Err(); err != nil {
		log.Printf("realtime: publish to %s: %v", userID, err)
	}
}

// SubscribeNotifications bridges the Redis notification channels into the
// hub. It blocks until ctx is cancelled, so run it in its own goroutine.
func SubscribeNotifications(ctx context.Context, rdb *redis.Client, hub *Hub) {
	sub := rdb.PSubscribe(ctx, notificationChannelPrefix+"*")
	defer sub.Close()

	for msg := range sub.Channel() {
		id := strings.TrimPrefix(msg.Channel, notificationChannelPrefix)
		userID, err := uuid.Parse(id)
		if err != nil {
			log.Printf("realtime: bad notification channel %q", msg.Channel)
			continue
		}
		hub.SendRaw(userID, []byte(msg.Payload))
	}
}
