package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	adminhttp "momoadmin/internal/adapters/in/http"
	"momoadmin/internal/adapters/out/memory"
	"momoadmin/internal/core/application/usecases/commands"
	"momoadmin/internal/core/application/usecases/queries"
	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const adminToken = "s3cret"

var (
	placedAt = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	now      = placedAt.Add(40 * time.Minute)
)

type stubQueue struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (q *stubQueue) Enqueue(_ string, msg notification.Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, msg)
}

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

// conflictingUoW loses every commit to a concurrent writer.
type conflictingUoW struct{ commands.UoW }

func (u conflictingUoW) Commit(ctx context.Context) error {
	_ = u.UoW.Rollback(ctx)
	return errs.NewConcurrencyConflictError("order", "commit")
}

type ServerTestSuite struct {
	suite.Suite
	store *memory.Store
	queue *stubQueue
	e     *echo.Echo
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	suite.store = memory.NewStore(func() time.Time { return now })
	suite.queue = &stubQueue{}

	suite.Require().NoError(suite.store.Seed(suite.T().Context(),
		suite.newOrder("4580", "Asha Gurung", order.Placed, placedAt),
		suite.newOrder("4582", "Chandra Tamang", order.Preparing, placedAt.Add(time.Minute)),
		suite.newOrder("4590", "Dawa Sherpa", order.Delivered, placedAt.Add(2*time.Minute)),
	))

	uowFactory := memory.NewUnitOfWorkFactory(suite.store)
	suite.e = suite.newEcho(uowFactoryFunc(func() commands.UoW { return uowFactory.Create() }))
}

func (suite *ServerTestSuite) newEcho(factory commands.UoWFactory) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	readModel := memory.NewReadModel(suite.store)

	server := adminhttp.NewServer(
		commands.NewTransitionOrderStatusCommandHandler(factory, suite.queue, commands.RetryPolicy{
			MaxAttempts:     2,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
		}, logger),
		commands.NewPlaceOrderCommandHandler(factory, logger),
		queries.NewGetOrdersQueryHandler(readModel),
		queries.NewGetOrderQueryHandler(readModel),
		queries.NewGetOrderAuditLogQueryHandler(readModel),
		queries.NewGetOrderBacklogQueryHandler(readModel),
		logger,
	)

	e := echo.New()
	adminhttp.RegisterHandlers(e, server, adminhttp.AdminTokens{adminToken: "admin-1"})
	return e
}

func (suite *ServerTestSuite) newOrder(id order.ID, customer string, status order.Status, createdAt time.Time) *order.Order {
	item, err := order.NewItem("Chicken Momo", 2)
	suite.Require().NoError(err)

	var deliveredAt *time.Time
	if status == order.Delivered {
		deliveredAt = &createdAt
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:          id,
		Customer:    customer,
		UserID:      "user-" + string(id),
		Items:       []order.Item{item},
		Total:       decimal.RequireFromString("14.50"),
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		DeliveredAt: deliveredAt,
	})
	suite.Require().NoError(err)
	return o
}

func (suite *ServerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (suite *ServerTestSuite) TestHealth() {
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestRejectsMissingAndUnknownTokens() {
	for name, header := range map[string]string{
		"missing": "",
		"unknown": "Bearer nope",
		"scheme":  adminToken,
	} {
		suite.Run(name, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := httptest.NewRecorder()
			suite.e.ServeHTTP(rec, req)

			suite.Equal(http.StatusUnauthorized, rec.Code)
			suite.Equal(http.StatusUnauthorized, decode[adminhttp.Error](suite.T(), rec).Code)
		})
	}
}

func (suite *ServerTestSuite) TestGetOrders() {
	rec := suite.do(http.MethodGet, "/api/v1/orders", "")
	suite.Require().Equal(http.StatusOK, rec.Code)

	orders := decode[[]adminhttp.Order](suite.T(), rec)
	suite.Require().Len(orders, 3)
	suite.Equal("4590", orders[0].ID)
	suite.Equal("4580", orders[2].ID)
	suite.Equal([]adminhttp.OrderItem{{Name: "Chicken Momo", Quantity: 2}}, orders[2].Items)
}

func (suite *ServerTestSuite) TestGetOrders_StatusFilterAndSearch() {
	rec := suite.do(http.MethodGet, "/api/v1/orders?status=Preparing&search=TAMANG", "")
	suite.Require().Equal(http.StatusOK, rec.Code)

	orders := decode[[]adminhttp.Order](suite.T(), rec)
	suite.Require().Len(orders, 1)
	suite.Equal("4582", orders[0].ID)
	suite.Equal(order.Preparing, orders[0].Status)
}

func (suite *ServerTestSuite) TestGetOrders_UnknownStatusFilter() {
	rec := suite.do(http.MethodGet, "/api/v1/orders?status=Lost", "")
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestGetOrder() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/4582", "")
	suite.Require().Equal(http.StatusOK, rec.Code)

	o := decode[adminhttp.Order](suite.T(), rec)
	suite.Equal("Chandra Tamang", o.Customer)
	suite.Equal([]order.Status{order.OutForDelivery, order.Cancelled}, o.AllowedTransitions)
	suite.True(decimal.RequireFromString("14.50").Equal(o.Total))
}

func (suite *ServerTestSuite) TestGetOrder_TerminalHasEmptyTransitions() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/4590", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"allowedTransitions":[]`)
}

func (suite *ServerTestSuite) TestGetOrder_NotFound() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/9999", "")
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal("Order not found: 9999", decode[adminhttp.Error](suite.T(), rec).Message)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus() {
	rec := suite.do(http.MethodPatch, "/api/v1/orders/4582/status", `{"status":"Out for Delivery"}`)
	suite.Require().Equal(http.StatusOK, rec.Code)

	o := decode[adminhttp.Order](suite.T(), rec)
	suite.Equal(order.OutForDelivery, o.Status)
	suite.True(now.Equal(o.UpdatedAt))
	suite.Nil(o.DeliveredAt)

	audit := suite.do(http.MethodGet, "/api/v1/orders/4582/audit-log", "")
	suite.Require().Equal(http.StatusOK, audit.Code)
	entries := decode[[]adminhttp.AuditEntry](suite.T(), audit)
	suite.Require().Len(entries, 1)
	suite.Equal("ORDER_STATUS_UPDATED", entries[0].Action)
	suite.Equal(order.Preparing, entries[0].PreviousStatus)
	suite.Equal(order.OutForDelivery, entries[0].NewStatus)
	suite.Equal("admin-1", entries[0].UpdatedBy)

	suite.Equal([]notification.Notification{{
		UserID: "user-4582",
		Title:  "Order Update",
		Body:   "Your order #4582 is out for delivery!",
	}}, suite.queue.sent)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	rec := suite.do(http.MethodPatch, "/api/v1/orders/4590/status", `{"status":"Cancelled"}`)
	suite.Require().Equal(http.StatusBadRequest, rec.Code)

	body := decode[adminhttp.TransitionError](suite.T(), rec)
	suite.Equal("cannot change order 4590 from Delivered to Cancelled", body.Message)
	suite.Equal(order.Delivered, body.CurrentStatus)
	suite.Equal(order.Cancelled, body.RequestedStatus)
	suite.Empty(suite.queue.sent)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_BadRequests() {
	for name, body := range map[string]string{
		"unknown status": `{"status":"Teleported"}`,
		"empty status":   `{}`,
		"malformed json": `{"status":`,
		"wrong type":     `{"status":3}`,
	} {
		suite.Run(name, func() {
			rec := suite.do(http.MethodPatch, "/api/v1/orders/4582/status", body)
			suite.Equal(http.StatusBadRequest, rec.Code)
		})
	}

	o, err := memory.NewReadModel(suite.store).GetOrder(suite.T().Context(), "4582")
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, o.Status())
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_NotFound() {
	rec := suite.do(http.MethodPatch, "/api/v1/orders/9999/status", `{"status":"Preparing"}`)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_ConflictIsRetryable() {
	uowFactory := memory.NewUnitOfWorkFactory(suite.store)
	suite.e = suite.newEcho(uowFactoryFunc(func() commands.UoW {
		return conflictingUoW{UoW: uowFactory.Create()}
	}))

	rec := suite.do(http.MethodPatch, "/api/v1/orders/4580/status", `{"status":"Pending"}`)
	suite.Equal(http.StatusConflict, rec.Code)
	suite.Empty(suite.queue.sent)
}

func (suite *ServerTestSuite) TestPlaceOrder() {
	rec := suite.do(http.MethodPost, "/api/v1/orders",
		`{"id":"4600","customer":"Bikash Rai","userId":"user-4600","items":[{"name":"Jhol Momo","quantity":3}],"total":"21.00"}`)
	suite.Require().Equal(http.StatusCreated, rec.Code)

	o := decode[adminhttp.Order](suite.T(), rec)
	suite.Equal("4600", o.ID)
	suite.Equal(order.Placed, o.Status)
	suite.True(now.Equal(o.CreatedAt))

	get := suite.do(http.MethodGet, "/api/v1/orders/4600", "")
	suite.Equal(http.StatusOK, get.Code)
}

func (suite *ServerTestSuite) TestPlaceOrder_GeneratesID() {
	rec := suite.do(http.MethodPost, "/api/v1/orders",
		`{"customer":"Bikash Rai","userId":"user-4600","items":[{"name":"Jhol Momo","quantity":1}],"total":"7.00"}`)
	suite.Require().Equal(http.StatusCreated, rec.Code)
	suite.NotEmpty(decode[adminhttp.Order](suite.T(), rec).ID)
}

func (suite *ServerTestSuite) TestPlaceOrder_DuplicateID() {
	rec := suite.do(http.MethodPost, "/api/v1/orders",
		`{"id":"4582","customer":"Bikash Rai","userId":"user-4600","items":[{"name":"Jhol Momo","quantity":1}],"total":"7.00"}`)
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *ServerTestSuite) TestPlaceOrder_InvalidItems() {
	rec := suite.do(http.MethodPost, "/api/v1/orders",
		`{"id":"4601","userId":"user-4601","items":[{"name":"Jhol Momo","quantity":0}],"total":"7.00"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/orders", `{"id":"4601","userId":"user-4601","items":[],"total":"7.00"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestGetOrderAuditLog_UnknownOrder() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/9999/audit-log", "")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestGetOrderBacklog() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/backlog", "")
	suite.Require().Equal(http.StatusOK, rec.Code)

	suite.Equal([]adminhttp.BacklogEntry{
		{Status: order.Placed, Count: 1},
		{Status: order.Pending, Count: 0},
		{Status: order.Preparing, Count: 1},
		{Status: order.OutForDelivery, Count: 0},
	}, decode[[]adminhttp.BacklogEntry](suite.T(), rec))
}

func TestParseAdminTokens(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    adminhttp.AdminTokens
		wantErr bool
	}{
		{name: "empty", raw: "", want: adminhttp.AdminTokens{}},
		{name: "single", raw: "abc:admin-1", want: adminhttp.AdminTokens{"abc": "admin-1"}},
		{name: "spaces and trailing comma", raw: " abc : admin-1 , def:admin-2,", want: adminhttp.AdminTokens{"abc": "admin-1", "def": "admin-2"}},
		{name: "missing admin", raw: "abc:", wantErr: true},
		{name: "missing separator", raw: "abc", wantErr: true},
		{name: "duplicate token", raw: "abc:admin-1,abc:admin-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adminhttp.ParseAdminTokens(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
