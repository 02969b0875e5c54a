package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
)

func TestMarshalDomainEventPayload_PriceChanged(t *testing.T) {
	at := producttest.Epoch
	raw, err := MarshalDomainEventPayload(&domain.PriceChangedEvent{
		ProductID: "p-1",
		OldPrice:  domain.MustMoney("100"),
		NewPrice:  domain.MustMoney("80.5"),
		Actor:     "alice",
		ChangedAt: at,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "p-1", got["product_id"])
	assert.Equal(t, "100.00", got["old_price"])
	assert.Equal(t, "80.50", got["new_price"])
	assert.Equal(t, "alice", got["actor"])
	assert.Equal(t, at.Format(time.RFC3339), got["changed_at"])
}

func TestMarshalDomainEventPayload_Nil(t *testing.T) {
	raw, err := MarshalDomainEventPayload(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestAddOutboxEvents(t *testing.T) {
	now := producttest.Epoch
	p, err := domain.NewProduct("p-1", producttest.Draft("A"), domain.PriceLimits{}, "alice", now)
	require.NoError(t, err)

	cs := contracts.NewChangeSet()
	require.NoError(t, AddOutboxEvents(cs, p, now))

	require.Len(t, cs.Events(), 1)
	ev := cs.Events()[0]
	assert.Equal(t, "product.created", ev.EventType)
	assert.Equal(t, "p-1", ev.AggregateID)
	assert.Equal(t, contracts.OutboxStatusPending, ev.Status)
	assert.NotEmpty(t, ev.EventID)
	assert.Contains(t, ev.PayloadJSON, `"base_price":"100.00"`)
}
