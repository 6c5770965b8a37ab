package common

import (
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
)

// SetIDNode configures the snowflake node number used by UUIDint64.
// It must be called before the first id is generated to take effect.
func SetIDNode(n int64) {
	idNodeOnce.Do(func() {
		node, err := snowflake.NewNode(n)
		if err != nil {
			zap.S().Errorf("invalid snowflake node %d, falling back to node 1: %v", n, err)
			node, _ = snowflake.NewNode(1)
		}
		idNode = node
	})
}

// UUIDint64 returns a new time-ordered, process-unique int64 identifier.
func UUIDint64() int64 {
	SetIDNode(1)
	return idNode.Generate().Int64()
}

// IsEmpty reports whether s is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
