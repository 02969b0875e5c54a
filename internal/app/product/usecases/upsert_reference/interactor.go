package upsert_reference

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// Kind selects the reference table a request writes to.
type Kind string

const (
	KindCategory Kind = "category"
	KindProvider Kind = "provider"
	KindUnit     Kind = "unit"
)

// Request creates a reference record, or renames it when ID is given.
// Phone and Email apply to providers, Abbreviation to units.
type Request struct {
	Kind         Kind
	ID           string
	Name         string
	Phone        string
	Email        string
	Abbreviation string
}

// Result holds the stored record; exactly one field is set.
type Result struct {
	Category *domain.Category
	Provider *domain.Provider
	Unit     *domain.Unit
}

type Interactor struct {
	Committer contracts.Committer
}

func NewInteractor(committer contracts.Committer) *Interactor {
	return &Interactor{Committer: committer}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*Result, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	cs := contracts.NewChangeSet()
	var res Result
	switch req.Kind {
	case KindCategory:
		c, err := domain.NewCategory(id, req.Name)
		if err != nil {
			return nil, err
		}
		cs.UpsertCategory(c)
		res.Category = c
	case KindProvider:
		p, err := domain.NewProvider(id, req.Name, req.Phone, req.Email)
		if err != nil {
			return nil, err
		}
		cs.UpsertProvider(p)
		res.Provider = p
	case KindUnit:
		u, err := domain.NewUnit(id, req.Name, req.Abbreviation)
		if err != nil {
			return nil, err
		}
		cs.UpsertUnit(u)
		res.Unit = u
	default:
		return nil, domain.Validationf("unknown reference kind %q", req.Kind)
	}

	if err := it.Committer.Apply(ctx, cs); err != nil {
		return nil, err
	}
	return &res, nil
}
