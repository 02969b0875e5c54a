package contracts

import "context"

// Committer applies a ChangeSet atomically: either every write in the set is
// persisted or none is. Usecases build the set and hand it over in one call,
// which keeps them independent of the storage driver.
type Committer interface {
	Apply(ctx context.Context, cs *ChangeSet) error
}
