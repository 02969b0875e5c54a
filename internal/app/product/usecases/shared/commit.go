package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// maxGuardRetries bounds how often a commit is retried after losing an alert
// race. Each retry drops at least one alert, so three kinds need at most three.
const maxGuardRetries = 3

// Commit applies cs. Deduplicated alerts are checked before the commit, but a
// writer in another process may record the same (product, kind) in between;
// the store then rejects the commit with domain.ErrAlertAlreadyRaised. Commit
// drops the alerts that now exist and applies the rest again, so cs.Alerts()
// afterwards lists exactly what was recorded.
func Commit(ctx context.Context, committer contracts.Committer, alerts contracts.AlertStore, cs *contracts.ChangeSet) error {
	for attempt := 0; ; attempt++ {
		err := committer.Apply(ctx, cs)
		if err == nil || !errors.Is(err, domain.ErrAlertAlreadyRaised) || attempt == maxGuardRetries {
			return err
		}

		var lookupErr error
		removed := cs.RemoveAlerts(func(a *domain.Alert) bool {
			if lookupErr != nil || !a.Kind().Deduplicated() {
				return false
			}
			exists, err := alerts.ExistsActive(ctx, a.ProductID(), a.Kind())
			if err != nil {
				lookupErr = fmt.Errorf("recheck %s alert for %s: %w", a.Kind(), a.ProductID(), err)
				return false
			}
			return exists
		})
		if lookupErr != nil {
			return lookupErr
		}
		if removed == 0 {
			return err
		}
	}
}
