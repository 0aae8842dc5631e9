package idgen

import (
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init menyiapkan node snowflake, nodeID harus unik per instance
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("init snowflake node %d: %w", nodeID, err)
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

func current() *snowflake.Node {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		// node 1 dipakai kalau Init belum dipanggil (misalnya di test)
		n, err := snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("init default snowflake node: %v", err)
		}
		node = n
	}
	return node
}

func GenerateID() int64 {
	return current().Generate().Int64()
}
