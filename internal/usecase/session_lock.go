package usecase

import (
	"hash/fnv"
	"sync"
)

// numSessionShards bounds the number of mutexes guarding session read-modify-write cycles.
const numSessionShards = 64

// sessionLocks serialises updates to the same session. Sessions hashing to the same
// shard also serialise against each other, which is harmless for short critical sections.
type sessionLocks struct {
	shards [numSessionShards]sync.Mutex
}

// lock acquires the shard for id and returns its unlock function.
func (l *sessionLocks) lock(id string) func() {
	m := &l.shards[shardFor(id)]
	m.Lock()
	return m.Unlock
}

func shardFor(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32() % numSessionShards
}
