package replenishment_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios. Implementan los puertos completos;
// los métodos que ningún test ejercita devuelven vacío.
// ──────────────────────────────────────────────────────────────────────────────

func levelKey(locationID, productID string) string {
	return locationID + "/" + productID
}

type fakeLevelRepo struct {
	byKey map[string]*entity.ReplenishmentLevel
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{byKey: make(map[string]*entity.ReplenishmentLevel)}
}

func (f *fakeLevelRepo) Get(_ context.Context, locationID, productID string) (*entity.ReplenishmentLevel, error) {
	lvl, ok := f.byKey[levelKey(locationID, productID)]
	if !ok {
		return nil, nil
	}
	cp := *lvl
	return &cp, nil
}

func (f *fakeLevelRepo) Upsert(_ context.Context, level *entity.ReplenishmentLevel) error {
	cp := *level
	f.byKey[levelKey(level.LocationID, level.ProductID)] = &cp
	return nil
}

func (f *fakeLevelRepo) UpdateCurrentLevel(_ context.Context, locationID, productID string, currentLevel int) error {
	lvl, ok := f.byKey[levelKey(locationID, productID)]
	if !ok {
		return domain.ErrNotFound
	}
	lvl.CurrentLevel = currentLevel
	lvl.LastUpdated = time.Now()
	return nil
}

func (f *fakeLevelRepo) ListByLocation(_ context.Context, locationID string) ([]repository.LevelRow, error) {
	var out []repository.LevelRow
	for _, lvl := range f.byKey {
		if lvl.LocationID == locationID {
			out = append(out, repository.LevelRow{ReplenishmentLevel: *lvl})
		}
	}
	return out, nil
}

func (f *fakeLevelRepo) GetLowStockItems(_ context.Context, locationID string) ([]repository.LowStockItem, error) {
	var out []repository.LowStockItem
	for _, lvl := range f.byKey {
		if locationID != "" && lvl.LocationID != locationID {
			continue
		}
		if lvl.CurrentLevel < lvl.TargetLevel {
			out = append(out, repository.LowStockItem{
				LocationID:   lvl.LocationID,
				ProductID:    lvl.ProductID,
				CurrentLevel: lvl.CurrentLevel,
				TargetLevel:  lvl.TargetLevel,
				LastUpdated:  lvl.LastUpdated,
			})
		}
	}
	return out, nil
}

func (f *fakeLevelRepo) Delete(_ context.Context, locationID, productID string) error {
	key := levelKey(locationID, productID)
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

type fakeCounterRepo struct {
	byKey map[string]*entity.StockOutCounter
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{byKey: make(map[string]*entity.StockOutCounter)}
}

func (f *fakeCounterRepo) Get(_ context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	c, ok := f.byKey[levelKey(locationID, productID)]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCounterRepo) Increment(_ context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	key := levelKey(locationID, productID)
	c, ok := f.byKey[key]
	if !ok {
		c = &entity.StockOutCounter{LocationID: locationID, ProductID: productID}
		f.byKey[key] = c
	}
	c.ConsecutiveWeeks++
	c.LastUpdated = time.Now()
	cp := *c
	return &cp, nil
}

func (f *fakeCounterRepo) Reset(_ context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	key := levelKey(locationID, productID)
	c, ok := f.byKey[key]
	if !ok {
		c = &entity.StockOutCounter{LocationID: locationID, ProductID: productID}
		f.byKey[key] = c
	}
	c.ConsecutiveWeeks = 0
	c.LastUpdated = time.Now()
	cp := *c
	return &cp, nil
}

func (f *fakeCounterRepo) ListAtOrAboveThreshold(_ context.Context, threshold int) ([]repository.ThresholdCounter, error) {
	var out []repository.ThresholdCounter
	for _, c := range f.byKey {
		if c.ConsecutiveWeeks >= threshold {
			out = append(out, repository.ThresholdCounter{
				LocationID:       c.LocationID,
				ProductID:        c.ProductID,
				ConsecutiveWeeks: c.ConsecutiveWeeks,
				LastUpdated:      c.LastUpdated,
			})
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	events []entity.StockOutHistory
}

func (f *fakeHistoryRepo) Record(_ context.Context, locationID, productID string) (*entity.StockOutHistory, error) {
	ev := entity.StockOutHistory{
		ID:           uuid.New().String(),
		LocationID:   locationID,
		ProductID:    productID,
		StockOutDate: time.Now(),
	}
	f.events = append(f.events, ev)
	return &ev, nil
}

func (f *fakeHistoryRepo) ListByLocation(_ context.Context, locationID string, _, _ *time.Time) ([]repository.StockOutEventRow, error) {
	var out []repository.StockOutEventRow
	for _, ev := range f.events {
		if ev.LocationID == locationID {
			out = append(out, repository.StockOutEventRow{StockOutHistory: ev})
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) ListByProduct(_ context.Context, locationID, productID string, _, _ *time.Time) ([]entity.StockOutHistory, error) {
	var out []entity.StockOutHistory
	for _, ev := range f.events {
		if ev.LocationID == locationID && ev.ProductID == productID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders  map[string]*entity.ReplenishmentOrder
	details map[string][]repository.DetailInput
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  make(map[string]*entity.ReplenishmentOrder),
		details: make(map[string][]repository.DetailInput),
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, locationID string, scheduledDate time.Time) (*entity.ReplenishmentOrder, error) {
	o := &entity.ReplenishmentOrder{
		ID:            uuid.New().String(),
		LocationID:    locationID,
		ScheduledDate: scheduledDate,
		Status:        entity.ReplenishmentStatusPending,
		CreatedAt:     time.Now(),
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeOrderRepo) AddDetails(_ context.Context, replenishmentID string, items []repository.DetailInput) error {
	for _, it := range items {
		if it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	f.details[replenishmentID] = append(f.details[replenishmentID], items...)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, replenishmentID string) (*repository.ReplenishmentOrderRow, error) {
	o, ok := f.orders[replenishmentID]
	if !ok {
		return nil, nil
	}
	return &repository.ReplenishmentOrderRow{ReplenishmentOrder: *o}, nil
}

func (f *fakeOrderRepo) GetDetails(_ context.Context, replenishmentID string) ([]repository.ReplenishmentDetailRow, error) {
	var out []repository.ReplenishmentDetailRow
	for _, d := range f.details[replenishmentID] {
		out = append(out, repository.ReplenishmentDetailRow{
			ReplenishmentDetail: entity.ReplenishmentDetail{
				ReplenishmentID: replenishmentID,
				ProductID:       d.ProductID,
				Quantity:        d.Quantity,
			},
		})
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.ReplenishmentOrder, error) {
	var out []*entity.ReplenishmentOrder
	for _, o := range f.orders {
		if o.LocationID == locationID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListPending(_ context.Context) ([]repository.ReplenishmentOrderRow, error) {
	var out []repository.ReplenishmentOrderRow
	for _, o := range f.orders {
		if o.Status == entity.ReplenishmentStatusPending {
			out = append(out, repository.ReplenishmentOrderRow{ReplenishmentOrder: *o})
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, replenishmentID, status string) (*entity.ReplenishmentOrder, error) {
	o, ok := f.orders[replenishmentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

type fakeLocationRepo struct {
	byID map[string]*entity.OrgLocation
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: make(map[string]*entity.OrgLocation)}
}

func (f *fakeLocationRepo) Create(_ context.Context, loc *entity.OrgLocation) error {
	f.byID[loc.ID] = loc
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.OrgLocation, error) {
	loc, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *loc
	return &cp, nil
}

func (f *fakeLocationRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.OrgLocation, error) {
	var out []*entity.OrgLocation
	for _, loc := range f.byID {
		if loc.OrgID == orgID {
			cp := *loc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) ListAll(_ context.Context) ([]*entity.OrgLocation, error) {
	var out []*entity.OrgLocation
	for _, loc := range f.byID {
		cp := *loc
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, loc *entity.OrgLocation) error {
	if _, ok := f.byID[loc.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[loc.ID] = loc
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeOrgRepo struct {
	byID map[string]*entity.Organization
}

func (f *fakeOrgRepo) Create(_ context.Context, org *entity.Organization) error {
	f.byID[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	org, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *org
	return &cp, nil
}

func (f *fakeOrgRepo) GetByUserID(_ context.Context, userID string) (*entity.Organization, error) {
	for _, org := range f.byID {
		if org.UserID == userID {
			cp := *org
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrgRepo) List(_ context.Context) ([]*entity.Organization, error) { return nil, nil }

func (f *fakeOrgRepo) Update(_ context.Context, org *entity.Organization) error {
	f.byID[org.ID] = org
	return nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) ToggleActive(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = !u.IsActive
	cp := *u
	return &cp, nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) { return nil, nil }

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id string, delta int) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.CurrentStock += delta
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción real.
type fakeTxRunner struct {
	orderRepo repository.ReplenishmentOrderRepository
	levelRepo repository.ReplenishmentLevelRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.ReplenishmentOrderRepository,
	levelRepo repository.ReplenishmentLevelRepository,
) error) error {
	return fn(f.orderRepo, f.levelRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de notificaciones: transporte y registro.
// ──────────────────────────────────────────────────────────────────────────────

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeSender struct {
	sent []sentMail
	fail bool
}

func (f *fakeSender) Send(to, subject, textBody, _ string) error {
	if f.fail {
		return errors.New("smtp: conexión rechazada")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: textBody})
	return nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	cp := *n
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	for _, n := range f.created {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
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

func (f *fakeNotificationRepo) CountUnread(_ context.Context, email string) (int, error) {
	count := 0
	for _, n := range f.created {
		if n.SentTo == email && !n.ReadFlag {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range f.created {
		if n.ID == id {
			n.ReadFlag = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, email string) error {
	for _, n := range f.created {
		if n.SentTo == email {
			n.ReadFlag = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	for i, n := range f.created {
		if n.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Verificación en compilación de que los fakes cumplen los puertos.
var (
	_ repository.ReplenishmentLevelRepository = (*fakeLevelRepo)(nil)
	_ repository.StockOutCounterRepository    = (*fakeCounterRepo)(nil)
	_ repository.StockOutHistoryRepository    = (*fakeHistoryRepo)(nil)
	_ repository.ReplenishmentOrderRepository = (*fakeOrderRepo)(nil)
	_ repository.OrgLocationRepository        = (*fakeLocationRepo)(nil)
	_ repository.OrganizationRepository       = (*fakeOrgRepo)(nil)
	_ repository.UserRepository               = (*fakeUserRepo)(nil)
	_ repository.ProductRepository            = (*fakeProductRepo)(nil)
	_ repository.NotificationRepository       = (*fakeNotificationRepo)(nil)
)
