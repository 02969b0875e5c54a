package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/models/m_reference"
)

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var r m_reference.CategoryRow
	err := s.db.GetContext(ctx, &r, `SELECT category_id, name FROM categories WHERE category_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get category: %w", err)
	}
	return &domain.Category{ID: r.CategoryID, Name: r.Name}, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []m_reference.CategoryRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT category_id, name FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("sqlitestore: list categories: %w", err)
	}
	out := make([]*domain.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.Category{ID: r.CategoryID, Name: r.Name})
	}
	return out, nil
}

func (s *Store) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	var r m_reference.ProviderRow
	err := s.db.GetContext(ctx, &r, `SELECT provider_id, name, phone, email FROM providers WHERE provider_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get provider: %w", err)
	}
	return &domain.Provider{ID: r.ProviderID, Name: r.Name, Phone: r.Phone, Email: r.Email}, nil
}

func (s *Store) ListProviders(ctx context.Context) ([]*domain.Provider, error) {
	var rows []m_reference.ProviderRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT provider_id, name, phone, email FROM providers ORDER BY name`); err != nil {
		return nil, fmt.Errorf("sqlitestore: list providers: %w", err)
	}
	out := make([]*domain.Provider, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.Provider{ID: r.ProviderID, Name: r.Name, Phone: r.Phone, Email: r.Email})
	}
	return out, nil
}

func (s *Store) GetUnit(ctx context.Context, id string) (*domain.Unit, error) {
	var r m_reference.UnitRow
	err := s.db.GetContext(ctx, &r, `SELECT unit_id, name, abbreviation FROM units WHERE unit_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get unit: %w", err)
	}
	return &domain.Unit{ID: r.UnitID, Name: r.Name, Abbreviation: r.Abbreviation}, nil
}

func (s *Store) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	var rows []m_reference.UnitRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT unit_id, name, abbreviation FROM units ORDER BY name`); err != nil {
		return nil, fmt.Errorf("sqlitestore: list units: %w", err)
	}
	out := make([]*domain.Unit, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.Unit{ID: r.UnitID, Name: r.Name, Abbreviation: r.Abbreviation})
	}
	return out, nil
}
