package replenishment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests GenerateWeeklyOrders
// ──────────────────────────────────────────────────────────────────────────────

const (
	locA = "00000000-0000-0000-0000-0000000000aa"
	locB = "00000000-0000-0000-0000-0000000000bb"
	locC = "00000000-0000-0000-0000-0000000000cc"
)

// lunes 2025-06-02, una fecha fija para que los cálculos de día sean deterministas
var monday = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func seedLocation(env *testEnv, id, name, deliveryDay string) {
	env.locations.byID[id] = &entity.OrgLocation{
		ID: id, OrgID: testOrgID, Name: name, DeliveryDay: deliveryDay,
	}
}

func seedRawLevel(env *testEnv, locationID, productID string, current, target int) {
	env.levels.byKey[levelKey(locationID, productID)] = &entity.ReplenishmentLevel{
		LocationID:   locationID,
		ProductID:    productID,
		CurrentLevel: current,
		TargetLevel:  target,
		LastUpdated:  monday,
	}
}

// La corrida crea una orden por ubicación con las líneas del déficit;
// los productos sin déficit se omiten.
func TestGenerateWeeklyOrders_LineasPorDeficit(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	delete(env.locations.byID, testLocationID)
	seedLocation(env, locA, "Sede Norte", "wednesday")

	seedRawLevel(env, locA, "prod-botellon", 5, 20) // déficit 15
	seedRawLevel(env, locA, "prod-galon", 30, 30)   // sin déficit
	seedRawLevel(env, locA, "prod-botella", 50, 30) // sobre-stock, déficit 0

	out, err := env.uc.GenerateWeeklyOrders(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	assert.Empty(t, out.Failed)

	order := out.Orders[0]
	assert.Equal(t, locA, order.LocationID)
	assert.Equal(t, entity.ReplenishmentStatusPending, order.Status)
	// lunes → miércoles = dos días después
	assert.Equal(t, monday.AddDate(0, 0, 2).Truncate(24*time.Hour), order.ScheduledDate.Truncate(24*time.Hour))

	details, err := env.uc.GetOrderDetails(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, details, 1, "solo el producto con déficit genera línea")
	assert.Equal(t, "prod-botellon", details[0].ProductID)
	assert.Equal(t, 15, details[0].Quantity)
}

// Una ubicación sin déficits igual recibe su orden, sin líneas.
func TestGenerateWeeklyOrders_OrdenSinLineas(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	delete(env.locations.byID, testLocationID)
	seedLocation(env, locB, "Sede Sur", "friday")
	seedRawLevel(env, locB, "prod-galon", 30, 30)

	out, err := env.uc.GenerateWeeklyOrders(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, out.Orders, 1)

	details, err := env.uc.GetOrderDetails(context.Background(), out.Orders[0].ID)
	require.NoError(t, err)
	assert.Empty(t, details)
}

// Un día de entrega inválido no tumba la corrida: la ubicación queda en Failed
// y las demás reciben su orden.
func TestGenerateWeeklyOrders_FalloParcial(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	delete(env.locations.byID, testLocationID)
	seedLocation(env, locA, "Sede Norte", "wednesday")
	seedLocation(env, locC, "Sede Rota", "someday")

	out, err := env.uc.GenerateWeeklyOrders(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, locC, out.Failed[0].LocationID)
	assert.NotEmpty(t, out.Failed[0].Error)
}

// El mismo día de entrega que hoy programa para la semana siguiente.
func TestGenerateWeeklyOrders_MismoDiaVaALaSemanaSiguiente(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	delete(env.locations.byID, testLocationID)
	seedLocation(env, locA, "Sede Norte", "monday")

	out, err := env.uc.GenerateWeeklyOrders(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	assert.Equal(t, monday.AddDate(0, 0, 7).Truncate(24*time.Hour),
		out.Orders[0].ScheduledDate.Truncate(24*time.Hour))
}

// Con el conteo automático encendido, la corrida incrementa los contadores de
// los productos en quiebre y resetea los demás.
func TestGenerateWeeklyOrders_MantieneContadores(t *testing.T) {
	cfg := defaultCfg()
	cfg.CountStockOuts = true
	env := newTestEnv(t, cfg)
	delete(env.locations.byID, testLocationID)
	seedLocation(env, locA, "Sede Norte", "wednesday")

	seedRawLevel(env, locA, "prod-quebrado", 0, 20)
	seedRawLevel(env, locA, "prod-sano", 10, 20)

	_, err := env.uc.GenerateWeeklyOrders(context.Background(), monday)
	require.NoError(t, err)

	c, err := env.uc.GetCounter(context.Background(), locA, "prod-quebrado")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ConsecutiveWeeks)

	c, err = env.uc.GetCounter(context.Background(), locA, "prod-sano")
	require.NoError(t, err)
	assert.Equal(t, 0, c.ConsecutiveWeeks)

	// El quiebre también queda en el historial; el producto sano no.
	evs, err := env.uc.ListStockOutsByProduct(context.Background(), locA, "prod-quebrado", nil, nil)
	require.NoError(t, err)
	assert.Len(t, evs, 1)

	evs, err = env.uc.ListStockOutsByProduct(context.Background(), locA, "prod-sano", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, evs)
}
