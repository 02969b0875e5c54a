package contracts

import "context"

// Locker serializes work on a key. Lock blocks until the key is free or ctx
// ends; the returned function releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
