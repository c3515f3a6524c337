package redisx

import (
	"fmt"
	"time"
)

const (
	// Per-user cart mutation lock: lock:cart:{user_id} -> owner token
	KeyCartLock = "lock:cart:%d"
)

var (
	TTLCartLock  = 10 * time.Second
	LockWait     = 2 * time.Second
	LockInterval = 25 * time.Millisecond
)

func CartLockKey(userID int64) string {
	return fmt.Sprintf(KeyCartLock, userID)
}
