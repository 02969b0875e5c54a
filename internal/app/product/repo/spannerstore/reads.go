package spannerstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/models/m_alert"
	"github.com/murkotick/stock-alert-service/internal/models/m_price_change"
	"github.com/murkotick/stock-alert-service/internal/models/m_reference"
)

// each runs stmt and hands every row to fn.
func (s *Store) each(ctx context.Context, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row, err := s.client.Single().ReadRow(ctx, m_reference.CategoriesTable, spanner.Key{id}, m_reference.CategoryColumns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("spannerstore: get category: %w", err)
	}
	var r m_reference.CategoryRow
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("spannerstore: decode category: %w", err)
	}
	return &domain.Category{ID: r.CategoryID, Name: r.Name}, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	err := s.each(ctx, spanner.Statement{SQL: `SELECT category_id, name FROM categories ORDER BY name`},
		func(row *spanner.Row) error {
			var r m_reference.CategoryRow
			if err := row.ToStruct(&r); err != nil {
				return err
			}
			out = append(out, &domain.Category{ID: r.CategoryID, Name: r.Name})
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("spannerstore: list categories: %w", err)
	}
	return out, nil
}

func (s *Store) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	row, err := s.client.Single().ReadRow(ctx, m_reference.ProvidersTable, spanner.Key{id}, m_reference.ProviderColumns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, domain.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("spannerstore: get provider: %w", err)
	}
	var r m_reference.ProviderRow
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("spannerstore: decode provider: %w", err)
	}
	return &domain.Provider{ID: r.ProviderID, Name: r.Name, Phone: r.Phone, Email: r.Email}, nil
}

func (s *Store) ListProviders(ctx context.Context) ([]*domain.Provider, error) {
	var out []*domain.Provider
	err := s.each(ctx, spanner.Statement{SQL: `SELECT provider_id, name, phone, email FROM providers ORDER BY name`},
		func(row *spanner.Row) error {
			var r m_reference.ProviderRow
			if err := row.ToStruct(&r); err != nil {
				return err
			}
			out = append(out, &domain.Provider{ID: r.ProviderID, Name: r.Name, Phone: r.Phone, Email: r.Email})
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("spannerstore: list providers: %w", err)
	}
	return out, nil
}

func (s *Store) GetUnit(ctx context.Context, id string) (*domain.Unit, error) {
	row, err := s.client.Single().ReadRow(ctx, m_reference.UnitsTable, spanner.Key{id}, m_reference.UnitColumns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, domain.ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("spannerstore: get unit: %w", err)
	}
	var r m_reference.UnitRow
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("spannerstore: decode unit: %w", err)
	}
	return &domain.Unit{ID: r.UnitID, Name: r.Name, Abbreviation: r.Abbreviation}, nil
}

func (s *Store) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	var out []*domain.Unit
	err := s.each(ctx, spanner.Statement{SQL: `SELECT unit_id, name, abbreviation FROM units ORDER BY name`},
		func(row *spanner.Row) error {
			var r m_reference.UnitRow
			if err := row.ToStruct(&r); err != nil {
				return err
			}
			out = append(out, &domain.Unit{ID: r.UnitID, Name: r.Name, Abbreviation: r.Abbreviation})
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("spannerstore: list units: %w", err)
	}
	return out, nil
}

func (s *Store) ExistsActive(ctx context.Context, productID string, kind domain.AlertKind) (bool, error) {
	found := false
	err := s.each(ctx, spanner.Statement{
		SQL:    `SELECT alert_id FROM alerts WHERE product_id = @product AND kind = @kind LIMIT 1`,
		Params: map[string]interface{}{"product": productID, "kind": string(kind)},
	}, func(*spanner.Row) error {
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("spannerstore: alert exists: %w", err)
	}
	return found, nil
}

func (s *Store) ListAlerts(ctx context.Context) ([]*domain.Alert, error) {
	return s.queryAlerts(ctx, spanner.Statement{
		SQL: `SELECT ` + m_alert.SelectList() + ` FROM alerts ORDER BY created_at, alert_id`,
	})
}

func (s *Store) ListAlertsByProduct(ctx context.Context, productID string) ([]*domain.Alert, error) {
	return s.queryAlerts(ctx, spanner.Statement{
		SQL:    `SELECT ` + m_alert.SelectList() + ` FROM alerts WHERE product_id = @product ORDER BY created_at, alert_id`,
		Params: map[string]interface{}{"product": productID},
	})
}

func (s *Store) queryAlerts(ctx context.Context, stmt spanner.Statement) ([]*domain.Alert, error) {
	var out []*domain.Alert
	err := s.each(ctx, stmt, func(row *spanner.Row) error {
		var r m_alert.Row
		if err := row.ToStruct(&r); err != nil {
			return err
		}
		out = append(out, domain.ReconstructAlert(r.AlertID, r.ProductID, domain.AlertKind(r.Kind),
			domain.Severity(r.Severity), r.Description, r.Actor, r.CreatedAt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("spannerstore: list alerts: %w", err)
	}
	return out, nil
}

func (s *Store) ListPriceHistory(ctx context.Context, productID string) ([]*domain.PriceChange, error) {
	var out []*domain.PriceChange
	err := s.each(ctx, spanner.Statement{
		SQL:    `SELECT ` + m_price_change.SelectList() + ` FROM price_changes WHERE product_id = @product ORDER BY changed_at, change_id`,
		Params: map[string]interface{}{"product": productID},
	}, func(row *spanner.Row) error {
		var r m_price_change.Row
		if err := row.ToStruct(&r); err != nil {
			return err
		}
		out = append(out, domain.ReconstructPriceChange(r.ChangeID, r.ProductID,
			domain.NewMoneyFromRat(&r.OldPrice), domain.NewMoneyFromRat(&r.NewPrice), r.Actor, r.ChangedAt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("spannerstore: list price history: %w", err)
	}
	return out, nil
}
