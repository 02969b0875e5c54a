package spannerstore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/models/m_product"
)

var productSelect = "SELECT " + m_product.SelectList("") + " FROM " + m_product.TableName

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.queryOneProduct(ctx, spanner.Statement{
		SQL:    productSelect + ` WHERE product_id = @id`,
		Params: map[string]interface{}{"id": id},
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *Store) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	return s.queryOneProduct(ctx, spanner.Statement{
		SQL:    productSelect + ` WHERE code = @code LIMIT 1`,
		Params: map[string]interface{}{"code": code},
	})
}

func (s *Store) FindByNameAndCategory(ctx context.Context, name, categoryID string) (*domain.Product, error) {
	return s.queryOneProduct(ctx, spanner.Statement{
		SQL:    productSelect + ` WHERE LOWER(name) = LOWER(@name) AND category_id = @category LIMIT 1`,
		Params: map[string]interface{}{"name": name, "category": categoryID},
	})
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.queryProducts(ctx, spanner.Statement{SQL: productSelect + ` ORDER BY created_at, product_id`})
}

func (s *Store) Filter(ctx context.Context, f contracts.ProductFilter) ([]*domain.Product, error) {
	var conds []string
	params := map[string]interface{}{}
	if f.CategoryID != nil {
		conds = append(conds, "category_id = @category")
		params["category"] = *f.CategoryID
	}
	if f.ProviderID != nil {
		conds = append(conds, "provider_id = @provider")
		params["provider"] = *f.ProviderID
	}
	if f.StockMin != nil {
		conds = append(conds, "stock_current >= @stock_min")
		params["stock_min"] = int64(*f.StockMin)
	}
	if f.StockMax != nil {
		conds = append(conds, "stock_current <= @stock_max")
		params["stock_max"] = int64(*f.StockMax)
	}

	sql := productSelect
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY created_at, product_id"

	products, err := s.queryProducts(ctx, spanner.Statement{SQL: sql, Params: params})
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

func (s *Store) queryOneProduct(ctx context.Context, stmt spanner.Statement) (*domain.Product, error) {
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("spannerstore: get product: %w", err)
	}
	return decodeProduct(row)
}

func (s *Store) queryProducts(ctx context.Context, stmt spanner.Statement) ([]*domain.Product, error) {
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*domain.Product
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spannerstore: list products: %w", err)
		}
		p, err := decodeProduct(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeProduct(row *spanner.Row) (*domain.Product, error) {
	var r m_product.Row
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("spannerstore: decode product: %w", err)
	}

	s := domain.ProductSnapshot{
		ID:           r.ProductID,
		Name:         r.Name,
		Code:         r.Code,
		Description:  r.Description.StringVal,
		BasePrice:    domain.NewMoneyFromRat(&r.BasePrice),
		StockCurrent: int(r.StockCurrent),
		StockMinimum: int(r.StockMinimum),
		Active:       r.Active,
		CategoryID:   r.CategoryID,
		UnitID:       r.UnitID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.PurchasePrice.Valid {
		s.PurchasePrice = domain.NewMoneyFromRat(&r.PurchasePrice.Numeric)
	}
	if r.ExpirationDate.Valid {
		d := r.ExpirationDate.Date
		s.ExpirationDate = &d
	}
	if r.ProviderID.Valid {
		v := r.ProviderID.StringVal
		s.ProviderID = &v
	}
	return domain.ReconstructProduct(s), nil
}
