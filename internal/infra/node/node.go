package node

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Node identifies this server process. Live feeds use the ID to get a
// consumer group of their own, so every replica sees every submission.
type Node struct {
	ID        string    `json:"id"`
	Hostname  string    `json:"hostname"`
	Version   string    `json:"version"`
	StartedAt time.Time `json:"startedAt"`
}

var Version = "development"

var (
	current     *Node
	currentOnce sync.Once
)

func GetNodeInfo() *Node {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "localhost"
		}
		current = &Node{
			ID:        uuid.NewString(),
			Hostname:  hostname,
			Version:   Version,
			StartedAt: time.Now().UTC(),
		}
	})

	info := *current
	return &info
}

// GroupFor derives a consumer group unique to this node.
func (n *Node) GroupFor(base string) string {
	return base + "-" + n.ID[:8]
}

func (n *Node) Uptime() time.Duration {
	return time.Since(n.StartedAt)
}
