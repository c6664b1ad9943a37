package rdx

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared Redis client. Nil until Init is called; callers that can
// run without Redis (tests, local demo without a server) must tolerate nil.
var Conn *redis.Client

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
