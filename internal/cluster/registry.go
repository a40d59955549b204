// Worker discovery over Redis: workers add themselves to a set and keep a
// heartbeat key alive; the driver takes the set members that still have a
// live heartbeat.
package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	workerSetKey       = "infergrid:workers"
	heartbeatKeyPrefix = "infergrid:worker:"
)

// Registry tracks live inference workers in Redis.
type Registry struct {
	client *redis.Client
}

// NewRegistry connects to Redis at addr. If addr is empty, defaults to
// localhost:6379.
func NewRegistry(addr string) (*Registry, error) {
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password by default
		DB:       0,  // Default DB
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Registry{client: client}, nil
}

func heartbeatKey(workerAddr string) string {
	return heartbeatKeyPrefix + workerAddr + ":alive"
}

// Register adds the worker to the fleet set and writes its first
// heartbeat.
func (r *Registry) Register(ctx context.Context, workerAddr string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("registry client is nil")
	}
	if err := r.client.SAdd(ctx, workerSetKey, workerAddr).Err(); err != nil {
		return fmt.Errorf("failed to register worker %s: %w", workerAddr, err)
	}
	return r.Heartbeat(ctx, workerAddr, ttl)
}

// Heartbeat refreshes the worker's liveness key.
func (r *Registry) Heartbeat(ctx context.Context, workerAddr string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("registry client is nil")
	}
	if err := r.client.Set(ctx, heartbeatKey(workerAddr), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to heartbeat worker %s: %w", workerAddr, err)
	}
	return nil
}

// Deregister removes the worker from the fleet set and drops its
// heartbeat.
func (r *Registry) Deregister(ctx context.Context, workerAddr string) error {
	if r.client == nil {
		return fmt.Errorf("registry client is nil")
	}
	if err := r.client.SRem(ctx, workerSetKey, workerAddr).Err(); err != nil {
		return fmt.Errorf("failed to deregister worker %s: %w", workerAddr, err)
	}
	if err := r.client.Del(ctx, heartbeatKey(workerAddr)).Err(); err != nil {
		return fmt.Errorf("failed to clear heartbeat for %s: %w", workerAddr, err)
	}
	return nil
}

// Discover returns the addresses of workers with a live heartbeat.
func (r *Registry) Discover(ctx context.Context) ([]string, error) {
	if r.client == nil {
		return nil, fmt.Errorf("registry client is nil")
	}
	members, err := r.client.SMembers(ctx, workerSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	var live []string
	for _, addr := range members {
		n, err := r.client.Exists(ctx, heartbeatKey(addr)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check heartbeat for %s: %w", addr, err)
		}
		if n > 0 {
			live = append(live, addr)
		}
	}
	return live, nil
}

// StartHeartbeat refreshes the worker's heartbeat every interval until ctx
// is cancelled.
func (r *Registry) StartHeartbeat(ctx context.Context, workerAddr string, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Heartbeat(ctx, workerAddr, ttl); err != nil {
					// Keep trying; a missed beat only matters if it
					// outlives the TTL.
					continue
				}
			}
		}
	}()
}

// Close closes the Redis connection.
func (r *Registry) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
