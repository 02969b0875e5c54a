package spannerstore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/models/m_alert"
	"github.com/murkotick/stock-alert-service/internal/models/m_outbox"
	"github.com/murkotick/stock-alert-service/internal/models/m_price_change"
	"github.com/murkotick/stock-alert-service/internal/models/m_product"
	"github.com/murkotick/stock-alert-service/internal/models/m_reference"
	"github.com/murkotick/stock-alert-service/internal/pkg/committer"
)

// Apply commits the change set as a single mutation plan.
func (s *Store) Apply(ctx context.Context, cs *contracts.ChangeSet) error {
	plan := buildPlan(cs)
	if err := s.committer.Apply(ctx, plan); err != nil {
		return mapCommitError(err, cs)
	}
	return nil
}

func mapCommitError(err error, cs *contracts.ChangeSet) error {
	switch spanner.ErrCode(err) {
	case codes.AlreadyExists:
		msg := spanner.ErrDesc(err)
		switch {
		case strings.Contains(msg, m_alert.GuardTableName):
			return errors.Join(domain.ErrAlertAlreadyRaised, err)
		case strings.Contains(msg, "products_by_category_name"):
			return errors.Join(domain.ErrDuplicateProductName, err)
		case len(cs.ProductInserts())+len(cs.ProductUpdates()) > 0:
			return errors.Join(domain.ErrDuplicateProductCode, err)
		}
	case codes.NotFound:
		if len(cs.ProductUpdates()) > 0 {
			return errors.Join(domain.ErrProductNotFound, err)
		}
	}
	return err
}

// buildPlan orders mutations the way the change set documents.
func buildPlan(cs *contracts.ChangeSet) *committer.Plan {
	plan := committer.NewPlan()
	if cs.IsEmpty() {
		return plan
	}

	for _, c := range cs.Categories() {
		plan.Add(m_reference.UpsertCategoryMutation(m_reference.CategoryRow{CategoryID: c.ID, Name: c.Name}))
	}
	for _, p := range cs.Providers() {
		plan.Add(m_reference.UpsertProviderMutation(m_reference.ProviderRow{
			ProviderID: p.ID, Name: p.Name, Phone: p.Phone, Email: p.Email,
		}))
	}
	for _, u := range cs.Units() {
		plan.Add(m_reference.UpsertUnitMutation(m_reference.UnitRow{UnitID: u.ID, Name: u.Name, Abbreviation: u.Abbreviation}))
	}
	for _, p := range cs.ProductInserts() {
		plan.Add(m_product.InsertMutation(buildInsertValues(p)))
	}
	for _, p := range cs.ProductUpdates() {
		plan.Add(updateMut(p))
	}
	for _, c := range cs.PriceChanges() {
		plan.Add(m_price_change.InsertMutation(m_price_change.Row{
			ProductID: c.ProductID(),
			ChangeID:  c.ID(),
			OldPrice:  *c.OldPrice().Rat(),
			NewPrice:  *c.NewPrice().Rat(),
			Actor:     c.Actor(),
			ChangedAt: c.ChangedAt().UTC(),
		}))
	}
	for _, a := range cs.Alerts() {
		row := m_alert.Row{
			AlertID:     a.ID(),
			ProductID:   a.ProductID(),
			Kind:        string(a.Kind()),
			Severity:    string(a.Severity()),
			Description: a.Description(),
			Actor:       a.Actor(),
			CreatedAt:   a.CreatedAt().UTC(),
		}
		plan.Add(m_alert.InsertMutation(row))
		if a.Kind().Deduplicated() {
			plan.Add(m_alert.GuardInsertMutation(row))
		}
	}
	for _, e := range cs.Events() {
		plan.Add(m_outbox.InsertMutation(m_outbox.Row{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.PayloadJSON,
			Status:      e.Status,
			CreatedAt:   e.CreatedAtUTC,
		}))
	}
	for _, id := range cs.ProductDeletes() {
		plan.Add(m_product.DeleteMutation(id))
	}
	return plan
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(m_product.Row{
		ProductID:      p.ID(),
		Name:           p.Name(),
		Code:           p.Code(),
		Description:    nullString(p.Description()),
		BasePrice:      *p.BasePrice().Rat(),
		PurchasePrice:  nullNumeric(p.PurchasePrice()),
		StockCurrent:   int64(p.StockCurrent()),
		StockMinimum:   int64(p.StockMinimum()),
		ExpirationDate: nullDate(p.ExpirationDate()),
		Active:         p.IsActive(),
		CategoryID:     p.CategoryID(),
		ProviderID:     nullStringPtr(p.ProviderID()),
		UnitID:         p.UnitID(),
		CreatedAt:      p.CreatedAt().UTC(),
		UpdatedAt:      p.UpdatedAt().UTC(),
	})
}

// buildUpdateValues collects the dirty columns of p.
func buildUpdateValues(p *domain.Product) map[string]interface{} {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}
	ch := p.Changes()
	updates := map[string]interface{}{}

	if ch.Dirty(domain.FieldName) {
		updates[m_product.ColName] = p.Name()
	}
	if ch.Dirty(domain.FieldCode) {
		updates[m_product.ColCode] = p.Code()
	}
	if ch.Dirty(domain.FieldDescription) {
		updates[m_product.ColDescription] = nullString(p.Description())
	}
	if ch.Dirty(domain.FieldBasePrice) {
		updates[m_product.ColBasePrice] = p.BasePrice().Rat()
	}
	if ch.Dirty(domain.FieldPurchasePrice) {
		updates[m_product.ColPurchasePrice] = nullNumeric(p.PurchasePrice())
	}
	if ch.Dirty(domain.FieldStockCurrent) {
		updates[m_product.ColStockCurrent] = int64(p.StockCurrent())
	}
	if ch.Dirty(domain.FieldStockMinimum) {
		updates[m_product.ColStockMinimum] = int64(p.StockMinimum())
	}
	if ch.Dirty(domain.FieldExpirationDate) {
		updates[m_product.ColExpirationDate] = nullDate(p.ExpirationDate())
	}
	if ch.Dirty(domain.FieldActive) {
		updates[m_product.ColActive] = p.IsActive()
	}
	if ch.Dirty(domain.FieldCategory) {
		updates[m_product.ColCategoryID] = p.CategoryID()
	}
	if ch.Dirty(domain.FieldProvider) {
		updates[m_product.ColProviderID] = nullStringPtr(p.ProviderID())
	}
	if ch.Dirty(domain.FieldUnit) {
		updates[m_product.ColUnitID] = p.UnitID()
	}

	updates[m_product.ColUpdatedAt] = p.UpdatedAt().UTC()
	return updates
}

func updateMut(p *domain.Product) *spanner.Mutation {
	values := buildUpdateValues(p)
	if values == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID(), values)
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullStringPtr(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

func nullNumeric(m *domain.Money) spanner.NullNumeric {
	if m == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *m.Rat(), Valid: true}
}

func nullDate(d *civil.Date) spanner.NullDate {
	if d == nil {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: *d, Valid: true}
}
