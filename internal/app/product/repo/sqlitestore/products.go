package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.getProductWhere(ctx, "product_id = ?", id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *Store) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	return s.getProductWhere(ctx, "code = ?", code)
}

// FindByNameAndCategory matches names case-insensitively.
func (s *Store) FindByNameAndCategory(ctx context.Context, name, categoryID string) (*domain.Product, error) {
	return s.getProductWhere(ctx, "LOWER(name) = LOWER(?) AND category_id = ?", name, categoryID)
}

func (s *Store) getProductWhere(ctx context.Context, where string, args ...interface{}) (*domain.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, productSelect+" WHERE "+where+" LIMIT 1", args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get product: %w", err)
	}
	return row.toDomain()
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.selectProducts(ctx, "", nil)
}

// Filter applies the column criteria in SQL and the expiration status in Go,
// since the status depends on the day the filter runs.
func (s *Store) Filter(ctx context.Context, f contracts.ProductFilter) ([]*domain.Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.CategoryID != nil {
		conds = append(conds, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.ProviderID != nil {
		conds = append(conds, "provider_id = ?")
		args = append(args, *f.ProviderID)
	}
	if f.StockMin != nil {
		conds = append(conds, "stock_current >= ?")
		args = append(args, *f.StockMin)
	}
	if f.StockMax != nil {
		conds = append(conds, "stock_current <= ?")
		args = append(args, *f.StockMax)
	}

	products, err := s.selectProducts(ctx, strings.Join(conds, " AND "), args)
	if err != nil {
		return nil, err
	}
	out := products[:0]
	for _, p := range products {
		if f.MatchesExpiration(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) selectProducts(ctx context.Context, where string, args []interface{}) ([]*domain.Product, error) {
	q := productSelect
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY created_at, product_id"

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("sqlitestore: list products: %w", err)
	}
	out := make([]*domain.Product, 0, len(rows))
	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) ListPriceHistory(ctx context.Context, productID string) ([]*domain.PriceChange, error) {
	var rows []priceChangeRow
	q := priceChangeSelect + " WHERE product_id = ? ORDER BY changed_at, rowid"
	if err := s.db.SelectContext(ctx, &rows, q, productID); err != nil {
		return nil, fmt.Errorf("sqlitestore: list price history: %w", err)
	}
	out := make([]*domain.PriceChange, 0, len(rows))
	for _, r := range rows {
		c, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
