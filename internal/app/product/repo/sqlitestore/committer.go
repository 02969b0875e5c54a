package sqlitestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/models/m_alert"
	"github.com/murkotick/stock-alert-service/internal/models/m_outbox"
	"github.com/murkotick/stock-alert-service/internal/models/m_price_change"
	"github.com/murkotick/stock-alert-service/internal/models/m_product"
)

var (
	productInsertSQL     = insertSQL(m_product.TableName, m_product.Columns)
	priceChangeInsertSQL = insertSQL(m_price_change.TableName, m_price_change.Columns)
	alertInsertSQL       = insertSQL(m_alert.TableName, m_alert.Columns)
	outboxInsertSQL      = insertSQL(m_outbox.TableName, m_outbox.Columns)
)

// Apply writes the change set in a single transaction.
func (s *Store) Apply(ctx context.Context, cs *contracts.ChangeSet) error {
	if cs.IsEmpty() {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := applyChangeSet(ctx, tx, cs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: commit: %w", err)
	}
	return nil
}

func applyChangeSet(ctx context.Context, tx *sqlx.Tx, cs *contracts.ChangeSet) error {
	for _, c := range cs.Categories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories(category_id, name) VALUES (?, ?)
			 ON CONFLICT(category_id) DO UPDATE SET name = excluded.name`, c.ID, c.Name); err != nil {
			return fmt.Errorf("sqlitestore: upsert category: %w", err)
		}
	}
	for _, p := range cs.Providers() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO providers(provider_id, name, phone, email) VALUES (?, ?, ?, ?)
			 ON CONFLICT(provider_id) DO UPDATE SET name = excluded.name, phone = excluded.phone, email = excluded.email`,
			p.ID, p.Name, p.Phone, p.Email); err != nil {
			return fmt.Errorf("sqlitestore: upsert provider: %w", err)
		}
	}
	for _, u := range cs.Units() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO units(unit_id, name, abbreviation) VALUES (?, ?, ?)
			 ON CONFLICT(unit_id) DO UPDATE SET name = excluded.name, abbreviation = excluded.abbreviation`,
			u.ID, u.Name, u.Abbreviation); err != nil {
			return fmt.Errorf("sqlitestore: upsert unit: %w", err)
		}
	}

	for _, p := range cs.ProductInserts() {
		if _, err := tx.ExecContext(ctx, productInsertSQL, productInsertArgs(p)...); err != nil {
			return mapConstraint(fmt.Errorf("sqlitestore: insert product: %w", err))
		}
	}
	for _, p := range cs.ProductUpdates() {
		if err := updateProduct(ctx, tx, p); err != nil {
			return err
		}
	}

	for _, c := range cs.PriceChanges() {
		if _, err := tx.ExecContext(ctx, priceChangeInsertSQL,
			c.ProductID(), c.ID(), c.OldPrice().Decimal().String(), c.NewPrice().Decimal().String(),
			c.Actor(), formatTime(c.ChangedAt())); err != nil {
			return fmt.Errorf("sqlitestore: append price change: %w", err)
		}
	}
	for _, a := range cs.Alerts() {
		if _, err := tx.ExecContext(ctx, alertInsertSQL,
			a.ID(), a.ProductID(), string(a.Kind()), string(a.Severity()), a.Description(),
			a.Actor(), formatTime(a.CreatedAt())); err != nil {
			return mapConstraint(fmt.Errorf("sqlitestore: add alert: %w", err))
		}
	}
	for _, e := range cs.Events() {
		if _, err := tx.ExecContext(ctx, outboxInsertSQL,
			e.EventID, e.EventType, e.AggregateID, e.PayloadJSON, e.Status, formatTime(e.CreatedAtUTC)); err != nil {
			return fmt.Errorf("sqlitestore: add outbox event: %w", err)
		}
	}

	for _, id := range cs.ProductDeletes() {
		if _, err := tx.ExecContext(ctx, `DELETE FROM price_changes WHERE product_id = ?`, id); err != nil {
			return fmt.Errorf("sqlitestore: delete price history: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id)
		if err != nil {
			return fmt.Errorf("sqlitestore: delete product: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrProductNotFound
		}
	}
	return nil
}

// updateProduct writes only the columns the aggregate marked dirty.
func updateProduct(ctx context.Context, tx *sqlx.Tx, p *domain.Product) error {
	var (
		sets []string
		args []interface{}
	)
	for _, field := range p.Changes().DirtyFields() {
		col, v, ok := productUpdateValue(p, field)
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, p.ID())

	res, err := tx.ExecContext(ctx,
		"UPDATE "+m_product.TableName+" SET "+strings.Join(sets, ", ")+" WHERE "+m_product.ColProductID+" = ?", args...)
	if err != nil {
		return mapConstraint(fmt.Errorf("sqlitestore: update product: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// mapConstraint turns unique index violations into domain errors.
func mapConstraint(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: products.code"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateProductCode, err)
	case strings.Contains(msg, "UNIQUE constraint failed: products.category_id, products.name"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateProductName, err)
	case strings.Contains(msg, "UNIQUE constraint failed: alerts.product_id, alerts.kind"):
		return fmt.Errorf("%w: %v", domain.ErrAlertAlreadyRaised, err)
	}
	return err
}

func insertSQL(table string, cols []string) string {
	return "INSERT INTO " + table + " (" + joinColumns(cols) + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
