package spannerstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// openEmulatorStore creates a fresh database on the Spanner emulator.
// Tests using it are skipped unless SPANNER_EMULATOR_HOST is set.
func openEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	projectID := env("SPANNER_PROJECT_ID", "test-project")
	instanceID := env("SPANNER_INSTANCE_ID", "emulator-instance")
	// Use a unique database per test to avoid id collisions.
	databaseID := fmt.Sprintf("it_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:20])

	parent := fmt.Sprintf("projects/%s", projectID)
	instName := fmt.Sprintf("%s/instances/%s", parent, instanceID)
	dbName := fmt.Sprintf("%s/databases/%s", instName, databaseID)

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	require.NoError(t, err)
	defer instAdmin.Close()
	ensureInstance(ctx, t, instAdmin, parent, instName, instanceID)

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	require.NoError(t, err)
	defer dbAdmin.Close()

	op, err := dbAdmin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
	})
	require.NoError(t, err)
	_, err = op.Wait(ctx)
	require.NoError(t, err)

	stmts, err := ReadDDLStatements(filepath.Join("..", "..", "..", "..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)
	require.NoError(t, ApplyDDL(ctx, dbName, stmts))

	s, err := Open(ctx, dbName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ensureInstance(ctx context.Context, t *testing.T, admin *instance.InstanceAdminClient, parent, instName, instanceID string) {
	t.Helper()
	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instName})
	if err == nil {
		return
	}
	require.Equal(t, codes.NotFound, status.Code(err), "GetInstance: %v", err)

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     parent,
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("%s/instanceConfigs/emulator-config", parent),
			DisplayName: "Integration Test Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return
	}
	require.NoError(t, err)
	_, err = op.Wait(ctx)
	require.NoError(t, err)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestEmulator_ProductLifecycle(t *testing.T) {
	s := openEmulatorStore(t)
	ctx := context.Background()

	cs := contracts.NewChangeSet()
	cs.UpsertCategory(&domain.Category{ID: "cat-1", Name: "Dairy"})
	cs.UpsertUnit(&domain.Unit{ID: "unit-1", Name: "Cup", Abbreviation: "cup"})
	p := newProduct(t, nil)
	cs.InsertProduct(p)
	require.NoError(t, s.Apply(ctx, cs))

	got, err := s.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.True(t, got.BasePrice().Equals(domain.MustMoney("19.99")))

	byCode, err := s.FindByCode(ctx, "YOG-1")
	require.NoError(t, err)
	require.NotNil(t, byCode)

	dup := contracts.NewChangeSet()
	other, err := domain.NewProduct("prod-2", domain.ProductDraft{
		Name: "Other", Code: "YOG-1", BasePrice: domain.MustMoney("1"), CategoryID: "cat-1", UnitID: "unit-1",
	}, domain.PriceLimits{}, "admin", now)
	require.NoError(t, err)
	dup.InsertProduct(other)
	assert.ErrorIs(t, s.Apply(ctx, dup), domain.ErrDuplicateProductCode)

	next, err := got.Revise(domain.ProductDraft{
		Name: "Yogurt", Code: "YOG-1", BasePrice: domain.MustMoney("25.00"),
		StockCurrent: 3, CategoryID: "cat-1", UnitID: "unit-1",
	}, "alice", domain.PriceLimits{}, now.Add(time.Minute))
	require.NoError(t, err)
	upd := contracts.NewChangeSet()
	upd.UpdateProduct(next)
	upd.AppendPriceChange(domain.NewPriceChange(uuid.NewString(), next.PriceChange()))
	require.NoError(t, s.Apply(ctx, upd))

	history, err := s.ListPriceHistory(ctx, p.ID())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "alice", history[0].Actor())

	_, err = s.GetCategory(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestEmulator_UniqueGuards(t *testing.T) {
	s := openEmulatorStore(t)
	ctx := context.Background()

	cs := contracts.NewChangeSet()
	cs.UpsertCategory(&domain.Category{ID: "cat-1", Name: "Dairy"})
	cs.UpsertUnit(&domain.Unit{ID: "unit-1", Name: "Cup", Abbreviation: "cup"})
	p := newProduct(t, nil)
	cs.InsertProduct(p)
	cs.AddAlert(domain.NewAlert(uuid.NewString(), p.ID(), domain.AlertCandidate{
		Kind: domain.AlertLowStock, Severity: domain.SeverityWarning, Description: "low",
	}, "admin", now))
	require.NoError(t, s.Apply(ctx, cs))

	again := contracts.NewChangeSet()
	again.AddAlert(domain.NewAlert(uuid.NewString(), p.ID(), domain.AlertCandidate{
		Kind: domain.AlertLowStock, Severity: domain.SeverityWarning, Description: "low",
	}, "system", now))
	assert.ErrorIs(t, s.Apply(ctx, again), domain.ErrAlertAlreadyRaised)

	sameName, err := domain.NewProduct("prod-2", domain.ProductDraft{
		Name: "YOGURT", Code: "YOG-2", BasePrice: domain.MustMoney("1"), CategoryID: "cat-1", UnitID: "unit-1",
	}, domain.PriceLimits{}, "admin", now)
	require.NoError(t, err)
	dup := contracts.NewChangeSet()
	dup.InsertProduct(sameName)
	assert.ErrorIs(t, s.Apply(ctx, dup), domain.ErrDuplicateProductName)

	as, err := s.ListAlertsByProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Len(t, as, 1)
}
