package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
	apphttp "github.com/acuaflow/acuaflow-api/internal/interfaces/http"
	pkgjwt "github.com/acuaflow/acuaflow-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de repositorio de notificaciones
// ──────────────────────────────────────────────────────────────────────────────

type fakeNotificationRepo struct {
	byID map[string]*entity.Notification
}

func newFakeNotificationRepo(ns ...*entity.Notification) *fakeNotificationRepo {
	f := &fakeNotificationRepo{byID: make(map[string]*entity.Notification)}
	for _, n := range ns {
		f.byID[n.ID] = n
	}
	return f
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.byID[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	return f.byID[id], nil
}

func (f *fakeNotificationRepo) ListByOrg(_ context.Context, _ string) ([]repository.NotificationRow, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListByLocation(_ context.Context, _ string) ([]repository.NotificationRow, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, _ string) ([]*entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListRecent(_ context.Context, _ int) ([]*entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListAll(_ context.Context) ([]*entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := f.byID[id]; ok {
		n.ReadFlag = true
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, _ string) error { return nil }

func (f *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testNotificationID = "00000000-0000-0000-0000-00000000n001"

// buildNotificationApp monta las rutas de detalle y lectura igual que el router.
func buildNotificationApp(repo repository.NotificationRepository) *fiber.App {
	handler := apphttp.NewNotificationHandler(notification.NewUseCase(repo), nil)
	app := fiber.New()
	grp := app.Group("/api/notifications", apphttp.AuthMiddleware(testJWTSecret))
	grp.Patch("/:id/read", handler.MarkRead)
	grp.Get("/:id", handler.GetByID)
	return app
}

// tokenFor genera un JWT con identidad arbitraria.
func tokenFor(t *testing.T, email, role, orgID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID: testUserID,
		Email:  email,
		Role:   role,
		OrgID:  orgID,
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func notificationRequest(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedNotification() *entity.Notification {
	return &entity.Notification{
		ID:       testNotificationID,
		OrgID:    testOrgID,
		Subject:  "Low Stock Alert",
		Message:  "Stock for 20L Bottle is low.",
		SentTo:   testEmail,
		SentDate: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de propiedad sobre la notificación
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el destinatario del correo puede consultar su notificación.
func TestNotificationGetByID_DestinatarioAccede(t *testing.T) {
	app := buildNotificationApp(newFakeNotificationRepo(seedNotification()))

	resp := notificationRequest(t, app, http.MethodGet,
		"/api/notifications/"+testNotificationID, tokenFor(t, testEmail, "customer", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 2: un usuario ajeno (otro correo, otra organización) recibe 404.
// No se revela que la notificación existe.
func TestNotificationGetByID_AjenoRecibe404(t *testing.T) {
	app := buildNotificationApp(newFakeNotificationRepo(seedNotification()))

	resp := notificationRequest(t, app, http.MethodGet,
		"/api/notifications/"+testNotificationID,
		tokenFor(t, "intruso@otro.test", "customer", "org-ajena"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"una notificación ajena debe responder como inexistente")
}

// Caso 3: un miembro de la organización dueña accede aunque el correo no coincida.
func TestNotificationGetByID_MismaOrganizacionAccede(t *testing.T) {
	app := buildNotificationApp(newFakeNotificationRepo(seedNotification()))

	resp := notificationRequest(t, app, http.MethodGet,
		"/api/notifications/"+testNotificationID,
		tokenFor(t, "otro-gerente@hotel-pacifico.test", "organization", testOrgID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: admin accede a cualquier notificación.
func TestNotificationGetByID_AdminAccede(t *testing.T) {
	app := buildNotificationApp(newFakeNotificationRepo(seedNotification()))

	resp := notificationRequest(t, app, http.MethodGet,
		"/api/notifications/"+testNotificationID,
		tokenFor(t, "soporte@acuaflow.test", "admin", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 5: marcar como leída exige la misma propiedad; un ajeno no muta la fila.
func TestNotificationMarkRead_AjenoNoMarca(t *testing.T) {
	repo := newFakeNotificationRepo(seedNotification())
	app := buildNotificationApp(repo)

	resp := notificationRequest(t, app, http.MethodPatch,
		"/api/notifications/"+testNotificationID+"/read",
		tokenFor(t, "intruso@otro.test", "customer", "org-ajena"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, repo.byID[testNotificationID].ReadFlag,
		"la notificación no debe quedar marcada como leída")
}

// Caso 5b: el destinatario sí marca como leída.
func TestNotificationMarkRead_DestinatarioMarca(t *testing.T) {
	repo := newFakeNotificationRepo(seedNotification())
	app := buildNotificationApp(repo)

	resp := notificationRequest(t, app, http.MethodPatch,
		"/api/notifications/"+testNotificationID+"/read",
		tokenFor(t, testEmail, "customer", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, repo.byID[testNotificationID].ReadFlag)
}
