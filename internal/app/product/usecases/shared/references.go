package shared

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// References bundles the reference-data lookups a product needs.
type References struct {
	Categories contracts.CategoryStore
	Providers  contracts.ProviderStore
	Units      contracts.UnitStore
}

// Resolve checks that every id p points at exists. Missing references are
// validation errors from the caller's point of view.
func (r References) Resolve(ctx context.Context, p *domain.Product) error {
	if _, err := r.Categories.GetCategory(ctx, p.CategoryID()); err != nil {
		return translateMissing(err, domain.ErrUnknownCategory)
	}
	if _, err := r.Units.GetUnit(ctx, p.UnitID()); err != nil {
		return translateMissing(err, domain.ErrUnknownUnit)
	}
	if id := p.ProviderID(); id != nil {
		if _, err := r.Providers.GetProvider(ctx, *id); err != nil {
			return translateMissing(err, domain.ErrUnknownProvider)
		}
	}
	return nil
}

func translateMissing(err, unknown error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return unknown
	}
	return err
}

// CheckUnique rejects a product whose code, or name within its category, is
// already taken by another product.
func CheckUnique(ctx context.Context, products contracts.ProductStore, p *domain.Product) error {
	byCode, err := products.FindByCode(ctx, p.Code())
	if err != nil {
		return err
	}
	if byCode != nil && byCode.ID() != p.ID() {
		return domain.ErrDuplicateProductCode
	}

	byName, err := products.FindByNameAndCategory(ctx, p.Name(), p.CategoryID())
	if err != nil {
		return err
	}
	if byName != nil && byName.ID() != p.ID() {
		return domain.ErrDuplicateProductName
	}
	return nil
}

// Lock keys. Product ids, codes and names live in separate namespaces.
func ProductLockKey(id string) string { return "product:" + id }
func CodeLockKey(code string) string { return "code:" + code }

// NameLockKey matches names the way uniqueness does: case-insensitively, per category.
func NameLockKey(categoryID, name string) string {
	return "name:" + categoryID + "/" + strings.ToLower(strings.TrimSpace(name))
}

// LockKeys acquires keys in sorted order so two callers needing overlapping
// keys cannot deadlock. Product locks, when needed, are taken before calling it.
func LockKeys(ctx context.Context, locker contracts.Locker, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	unlocks := make([]func(), 0, len(sorted))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		unlock, err := locker.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
