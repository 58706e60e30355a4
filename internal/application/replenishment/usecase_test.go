package replenishment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/application/replenishment"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/pkg/config"
	"github.com/acuaflow/acuaflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testOrgID      = "00000000-0000-0000-0000-000000000002"
	testLocationID = "00000000-0000-0000-0000-000000000003"
	testProductID  = "00000000-0000-0000-0000-000000000004"
	testEmail      = "compras@hotel-pacifico.test"
)

type testEnv struct {
	uc            *replenishment.UseCase
	levels        *fakeLevelRepo
	counters      *fakeCounterRepo
	history       *fakeHistoryRepo
	orders        *fakeOrderRepo
	locations     *fakeLocationRepo
	sender        *fakeSender
	notifications *fakeNotificationRepo
}

func defaultCfg() config.ReplenishmentConfig {
	return config.ReplenishmentConfig{
		LowStockRatio:  0.20,
		ThresholdWeeks: 3,
	}
}

// newTestEnv arma el caso de uso con fakes y una organización sembrada:
// un usuario dueño, una ubicación con entrega los miércoles y un producto.
func newTestEnv(t *testing.T, cfg config.ReplenishmentConfig) *testEnv {
	t.Helper()

	env := &testEnv{
		levels:        newFakeLevelRepo(),
		counters:      newFakeCounterRepo(),
		history:       &fakeHistoryRepo{},
		orders:        newFakeOrderRepo(),
		locations:     newFakeLocationRepo(),
		sender:        &fakeSender{},
		notifications: &fakeNotificationRepo{},
	}
	users := &fakeUserRepo{byID: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: testEmail, Role: entity.RoleOrganization, IsActive: true},
	}}
	orgs := &fakeOrgRepo{byID: map[string]*entity.Organization{
		testOrgID: {ID: testOrgID, UserID: testUserID, Name: "Hotel Pacífico"},
	}}
	env.locations.byID[testLocationID] = &entity.OrgLocation{
		ID:          testLocationID,
		OrgID:       testOrgID,
		Name:        "Sede Principal",
		DeliveryDay: "wednesday",
	}
	products := &fakeProductRepo{byID: map[string]*entity.Product{
		testProductID: {ID: testProductID, ContainerType: "Botellón 20L", IsActive: true},
	}}

	dispatcher := notification.NewDispatcher(env.sender, env.notifications)
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	env.uc = replenishment.NewUseCase(
		env.levels, env.counters, env.history, env.orders,
		env.locations, orgs, users, products,
		&fakeTxRunner{orderRepo: env.orders, levelRepo: env.levels},
		dispatcher, cfg, log,
	)
	return env
}

func setLevel(t *testing.T, env *testEnv, current, target int) *entity.ReplenishmentLevel {
	t.Helper()
	lvl, err := env.uc.UpdateStockLevels(context.Background(), testLocationID, testProductID,
		dto.UpdateStockLevelsRequest{CurrentLevel: current, TargetLevel: target})
	require.NoError(t, err)
	return lvl
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStockLevels
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: niveles negativos no se aceptan.
func TestUpdateStockLevels_NivelNegativoInvalido(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	_, err := env.uc.UpdateStockLevels(context.Background(), testLocationID, testProductID,
		dto.UpdateStockLevelsRequest{CurrentLevel: -1, TargetLevel: 20})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nivel actual negativo debe rechazarse")

	_, err = env.uc.UpdateStockLevels(context.Background(), testLocationID, testProductID,
		dto.UpdateStockLevelsRequest{CurrentLevel: 5, TargetLevel: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nivel objetivo negativo debe rechazarse")
}

// Caso 2: el upsert reemplaza el nivel existente; Get devuelve lo último escrito.
func TestUpdateStockLevels_UpsertReemplaza(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	setLevel(t, env, 10, 20)
	setLevel(t, env, 18, 25)

	lvl, err := env.uc.GetLevel(context.Background(), testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 18, lvl.CurrentLevel)
	assert.Equal(t, 25, lvl.TargetLevel)
}

// Caso 3: nivel actual bajo el 20% del objetivo → exactamente una alerta de
// stock bajo, dirigida al dueño de la organización y asociada al producto.
func TestUpdateStockLevels_AlertaStockBajo(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	// 3 < 20*0.20 = 4 → alerta
	setLevel(t, env, 3, 20)

	require.Len(t, env.sender.sent, 1, "debe enviarse exactamente un correo")
	assert.Equal(t, "Low Stock Alert", env.sender.sent[0].Subject)
	assert.Equal(t, testEmail, env.sender.sent[0].To)

	require.Len(t, env.notifications.created, 1, "debe registrarse la notificación enviada")
	n := env.notifications.created[0]
	require.NotNil(t, n.ProductID, "la alerta de stock bajo referencia al producto")
	assert.Equal(t, testProductID, *n.ProductID)
	assert.Equal(t, testOrgID, n.OrgID)
	assert.Equal(t, testLocationID, n.LocationID)
}

// Caso 4: nivel en el 20% justo o por encima → ninguna alerta.
func TestUpdateStockLevels_SinAlertaSobreElUmbral(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	// 4 == 20*0.20 → sin alerta (la condición es estrictamente menor)
	setLevel(t, env, 4, 20)
	setLevel(t, env, 15, 20)

	assert.Empty(t, env.sender.sent, "ningún correo sobre el umbral")
	assert.Empty(t, env.notifications.created)
}

// Caso 5: nivel en 0 → evento de quiebre en el historial (además de la alerta).
func TestUpdateStockLevels_QuiebreRegistraHistorial(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	setLevel(t, env, 0, 20)

	require.Len(t, env.history.events, 1, "el quiebre deja un evento en el historial")
	assert.Equal(t, testLocationID, env.history.events[0].LocationID)
	assert.Equal(t, testProductID, env.history.events[0].ProductID)
	assert.Len(t, env.sender.sent, 1, "0 está bajo el umbral, también alerta")
}

// Caso 6: si el transporte de correo falla, la operación falla y no queda registro.
func TestUpdateStockLevels_FalloDeCorreoNoDejaRegistro(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	env.sender.fail = true

	_, err := env.uc.UpdateStockLevels(context.Background(), testLocationID, testProductID,
		dto.UpdateStockLevelsRequest{CurrentLevel: 1, TargetLevel: 20})
	require.Error(t, err)
	assert.Empty(t, env.notifications.created, "sin envío no hay registro")
}

// Caso 7: con el conteo automático encendido, el chequeo mantiene el contador.
func TestUpdateStockLevels_ConteoAutomaticoDeQuiebres(t *testing.T) {
	cfg := defaultCfg()
	cfg.CountStockOuts = true
	env := newTestEnv(t, cfg)

	setLevel(t, env, 0, 20)
	setLevel(t, env, 0, 20)

	c, err := env.uc.GetCounter(context.Background(), testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ConsecutiveWeeks, "dos chequeos en quiebre suman dos semanas")

	setLevel(t, env, 12, 20)
	c, err = env.uc.GetCounter(context.Background(), testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.ConsecutiveWeeks, "reponer resetea el contador")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests contadores e historial
// ──────────────────────────────────────────────────────────────────────────────

// Incrementar dos veces un contador inexistente lo deja en 2.
func TestIncrementCounter_DobleIncremento(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	ctx := context.Background()

	c, err := env.uc.IncrementCounter(ctx, testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ConsecutiveWeeks, "el primer incremento crea el contador en 1")

	c, err = env.uc.IncrementCounter(ctx, testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ConsecutiveWeeks)
}

// Resetear un contador inexistente lo crea en 0.
func TestResetCounter_CreaEnCero(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	c, err := env.uc.ResetCounter(context.Background(), testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.ConsecutiveWeeks)
}

// El reporte de umbral usa el valor configurado cuando no se pide uno explícito.
func TestThresholdReport_UmbralPorDefecto(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.uc.IncrementCounter(ctx, testLocationID, testProductID)
		require.NoError(t, err)
	}
	_, err := env.uc.IncrementCounter(ctx, testLocationID, "otro-producto")
	require.NoError(t, err)

	rows, err := env.uc.ThresholdReport(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1, "solo el contador con >= 3 semanas entra al reporte")
	assert.Equal(t, testProductID, rows[0].ProductID)
	assert.Equal(t, 3, rows[0].ConsecutiveWeeks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests órdenes de reposición
// ──────────────────────────────────────────────────────────────────────────────

// Una orden manual con cantidad no positiva se rechaza entera.
func TestCreateOrder_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	_, err := env.uc.CreateOrder(context.Background(), dto.CreateReplenishmentOrderRequest{
		LocationID:    testLocationID,
		ScheduledDate: time.Now().Add(48 * time.Hour),
		Products: []dto.ReplenishmentProductInput{
			{ProductID: testProductID, Quantity: 0},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.orders.orders, "no debe quedar cabecera huérfana")
}

// Crear y leer una orden con líneas.
func TestCreateOrder_ConLineas(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	ctx := context.Background()

	order, err := env.uc.CreateOrder(ctx, dto.CreateReplenishmentOrderRequest{
		LocationID:    testLocationID,
		ScheduledDate: time.Now().Add(48 * time.Hour),
		Products: []dto.ReplenishmentProductInput{
			{ProductID: testProductID, Quantity: 12},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentStatusPending, order.Status, "la orden nace pendiente")

	details, err := env.uc.GetOrderDetails(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 12, details[0].Quantity)
}

// Completar una orden pendiente envía exactamente una notificación de cierre,
// sin producto asociado; completarla de nuevo es un conflicto y no re-notifica.
func TestCompleteOrder_UnaSolaNotificacion(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	ctx := context.Background()

	order, err := env.uc.CreateOrder(ctx, dto.CreateReplenishmentOrderRequest{
		LocationID:    testLocationID,
		ScheduledDate: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	done, err := env.uc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentStatusCompleted, done.Status)

	require.Len(t, env.sender.sent, 1)
	assert.Equal(t, "Replenishment Completed", env.sender.sent[0].Subject)
	require.Len(t, env.notifications.created, 1)
	assert.Nil(t, env.notifications.created[0].ProductID, "el cierre es un aviso general, sin producto")

	_, err = env.uc.CompleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden completada no se completa dos veces")
	assert.Len(t, env.sender.sent, 1, "el conflicto no re-notifica")
}

// Completar una orden inexistente es not found.
func TestCompleteOrder_NoExiste(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	_, err := env.uc.CompleteOrder(context.Background(), "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests reporte de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

// El reporte incluye todo nivel con actual < objetivo, también los que están
// sobre la fracción de alerta. El umbral del 20% solo decide notificaciones.
func TestGetLowStockItems_TodoBajoObjetivo(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	ctx := context.Background()

	setLevel(t, env, 2, 20) // bajo la fracción de alerta
	_, err := env.uc.UpdateStockLevels(ctx, testLocationID, "producto-justo",
		dto.UpdateStockLevelsRequest{CurrentLevel: 10, TargetLevel: 20}) // sobre el 20% pero bajo el objetivo
	require.NoError(t, err)
	_, err = env.uc.UpdateStockLevels(ctx, testLocationID, "producto-lleno",
		dto.UpdateStockLevelsRequest{CurrentLevel: 20, TargetLevel: 20}) // en el objetivo, fuera del reporte
	require.NoError(t, err)

	items, err := env.uc.GetLowStockItems(ctx, testLocationID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	got := make(map[string]int, len(items))
	for _, it := range items {
		got[it.ProductID] = it.CurrentLevel
	}
	assert.Equal(t, map[string]int{testProductID: 2, "producto-justo": 10}, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ajuste del nivel actual
// ──────────────────────────────────────────────────────────────────────────────

// El ajuste puntual conserva el objetivo y corre el mismo chequeo que el
// registro completo: en cero registra el quiebre, toca el contador y alerta.
func TestUpdateCurrentLevel_EnCeroDisparaQuiebreYAlerta(t *testing.T) {
	cfg := defaultCfg()
	cfg.CountStockOuts = true
	env := newTestEnv(t, cfg)
	ctx := context.Background()

	setLevel(t, env, 10, 20) // sano: sin alerta ni quiebre

	lvl, err := env.uc.UpdateCurrentLevel(ctx, testLocationID, testProductID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, lvl.CurrentLevel)
	assert.Equal(t, 20, lvl.TargetLevel, "el objetivo no se toca")

	evs, err := env.uc.ListStockOutsByProduct(ctx, testLocationID, testProductID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, evs, 1)

	counter, err := env.uc.GetCounter(ctx, testLocationID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.ConsecutiveWeeks)

	require.Len(t, env.sender.sent, 1)
	assert.Equal(t, "Low Stock Alert", env.sender.sent[0].Subject)
}

// Sin fila previa no hay nada que ajustar.
func TestUpdateCurrentLevel_FilaInexistente(t *testing.T) {
	env := newTestEnv(t, defaultCfg())

	_, err := env.uc.UpdateCurrentLevel(context.Background(), testLocationID, "producto-fantasma", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un nivel negativo se rechaza antes de tocar el repositorio.
func TestUpdateCurrentLevel_NegativoEsInvalido(t *testing.T) {
	env := newTestEnv(t, defaultCfg())
	setLevel(t, env, 10, 20)

	_, err := env.uc.UpdateCurrentLevel(context.Background(), testLocationID, testProductID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
