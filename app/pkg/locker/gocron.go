package locker

import (
	"time"

	redislock "github.com/go-co-op/gocron-redis-lock/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
)

const defaultExpiry = time.Minute

type Locker gocron.Locker

// NewTryLocker makes a single attempt per run, so when several workers share
// a schedule only the first one to reach redis runs the task and the rest skip
// that tick. expiry should outlast the longest task run.
func NewTryLocker(rd redis.UniversalClient, expiry time.Duration) (Locker, error) {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	return redislock.NewRedisLockerAlways(rd, redislock.WithExpiry(expiry), redislock.WithTries(1))
}
