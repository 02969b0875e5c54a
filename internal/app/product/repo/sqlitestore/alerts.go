package sqlitestore

import (
	"context"
	"fmt"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

func (s *Store) ExistsActive(ctx context.Context, productID string, kind domain.AlertKind) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(1) FROM alerts WHERE product_id = ? AND kind = ?`, productID, string(kind))
	if err != nil {
		return false, fmt.Errorf("sqlitestore: alert exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ListAlerts(ctx context.Context) ([]*domain.Alert, error) {
	return s.selectAlerts(ctx, alertSelect+" ORDER BY created_at, rowid")
}

func (s *Store) ListAlertsByProduct(ctx context.Context, productID string) ([]*domain.Alert, error) {
	return s.selectAlerts(ctx, alertSelect+" WHERE product_id = ? ORDER BY created_at, rowid", productID)
}

func (s *Store) selectAlerts(ctx context.Context, q string, args ...interface{}) ([]*domain.Alert, error) {
	var rows []alertRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("sqlitestore: list alerts: %w", err)
	}
	out := make([]*domain.Alert, 0, len(rows))
	for _, r := range rows {
		a, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
