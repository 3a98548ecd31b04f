package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/cambio/internal/auth"
	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/bank"
	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/client"
	"github.com/MrJamesThe3rd/cambio/internal/currency"
	cambioHttp "github.com/MrJamesThe3rd/cambio/internal/http"
	authHandler "github.com/MrJamesThe3rd/cambio/internal/http/auth"
	balanceHandler "github.com/MrJamesThe3rd/cambio/internal/http/balance"
	bankHandler "github.com/MrJamesThe3rd/cambio/internal/http/bank"
	cajaHandler "github.com/MrJamesThe3rd/cambio/internal/http/caja"
	clientHandler "github.com/MrJamesThe3rd/cambio/internal/http/client"
	currencyHandler "github.com/MrJamesThe3rd/cambio/internal/http/currency"
	operationTypeHandler "github.com/MrJamesThe3rd/cambio/internal/http/operationtype"
	operatorHandler "github.com/MrJamesThe3rd/cambio/internal/http/operator"
	syncHandler "github.com/MrJamesThe3rd/cambio/internal/http/sync"
	txHandler "github.com/MrJamesThe3rd/cambio/internal/http/transaction"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/operator"
	"github.com/MrJamesThe3rd/cambio/internal/refresh"
	"github.com/MrJamesThe3rd/cambio/internal/state"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

const password = "correct horse"

type fixture struct {
	router    http.Handler
	operators *operator.MockRepository
	sessions  *caja.MockRepository
	clients   *client.MockRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		operators: operator.NewMockRepository(ctrl),
		sessions:  caja.NewMockRepository(ctrl),
		clients:   client.NewMockRepository(ctrl),
	}

	var (
		balances     = state.NewContainer[balance.Balance]()
		transactions = state.NewContainer[transaction.Transaction]()
		types        = state.NewContainer[operationtype.OperationType]()
	)

	operatorService := operator.NewService(f.operators, state.NewContainer[operator.Operator]())
	authService := auth.NewService(operatorService, state.NewValue(auth.Session{}), "test-secret", time.Hour)
	cajaService := caja.NewService(f.sessions, state.NewValue(caja.Session{}), balances)
	typeService := operationtype.NewService(operationtype.NewMockRepository(ctrl), types)
	currencyService := currency.NewService(currency.NewMockRepository(ctrl),
		state.NewContainer[currency.Currency](), state.NewContainer[currency.Crypto]())

	f.router = cambioHttp.New(cambioHttp.Handlers{
		Auth:           authHandler.NewHandler(authService),
		Caja:           cajaHandler.NewHandler(cajaService),
		Balances:       balanceHandler.NewHandler(balance.NewService(balance.NewMockRepository(ctrl), balances), cajaService),
		Transactions:   txHandler.NewHandler(transaction.NewService(transaction.NewMockRepository(ctrl), transactions, balances), typeService, nil),
		Clients:        clientHandler.NewHandler(client.NewService(f.clients, state.NewContainer[client.Client]())),
		Currencies:     currencyHandler.NewHandler(currencyService),
		OperationTypes: operationTypeHandler.NewHandler(typeService),
		Operators:      operatorHandler.NewHandler(operatorService),
		Banks: bankHandler.NewHandler(bank.NewService(bank.NewMockRepository(ctrl),
			state.NewContainer[bank.Bank](), state.NewContainer[bank.Balance]())),
		Sync: syncHandler.NewHandler(refresh.New(refresh.Sources{}, refresh.Targets{})),
	}, cambioHttp.Options{CORSOrigins: []string{"*"}, Tokens: authService})

	return f
}

func (f *fixture) login(t *testing.T, op *operator.Operator) string {
	t.Helper()

	hash, err := operator.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	op.PasswordHash = hash
	f.operators.EXPECT().GetActiveByEmail(gomock.Any(), op.Email).Return(op, nil)

	body := `{"email":"` + op.Email + `","password":"` + password + `"}`
	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sess auth.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	require.NotEmpty(t, sess.Token)

	return sess.Token
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/caja", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/caja", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginRejectsWrongPassword(t *testing.T) {
	f := newFixture(t)

	hash, err := operator.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	f.operators.EXPECT().GetActiveByEmail(gomock.Any(), "ana@example.com").
		Return(&operator.Operator{ID: uuid.New(), Email: "ana@example.com", PasswordHash: hash, Active: true}, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginValidatesBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "email", resp.Fields["Email"])
	assert.Equal(t, "required", resp.Fields["Password"])
}

func TestRouter_OpenCaja(t *testing.T) {
	f := newFixture(t)

	op := &operator.Operator{ID: uuid.New(), Email: "ana@example.com", Role: operator.RoleCashier, Active: true}
	token := f.login(t, op)

	f.sessions.EXPECT().GetOpenSession(gomock.Any()).Return(nil, caja.ErrNoOpenSession)
	f.sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.do(t, http.MethodPost, "/api/v1/caja/open", token, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sess caja.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.True(t, sess.IsOpen)
	require.NotNil(t, sess.OpenedBy)
	assert.Equal(t, op.ID, *sess.OpenedBy)

	f.sessions.EXPECT().GetOpenSession(gomock.Any()).Return(&sess, nil)

	rec = f.do(t, http.MethodPost, "/api/v1/caja/open", token, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/caja", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var current caja.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&current))
	assert.Equal(t, sess.ID, current.ID)
}

func TestRouter_CreateBalanceNeedsOpenCaja(t *testing.T) {
	f := newFixture(t)

	token := f.login(t, &operator.Operator{ID: uuid.New(), Email: "ana@example.com", Role: operator.RoleAdmin, Active: true})

	rec := f.do(t, http.MethodPost, "/api/v1/balances", token, `{"name":"Efectivo","currencyCode":"ARS","amount":100}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_Permissions(t *testing.T) {
	f := newFixture(t)

	cashier := f.login(t, &operator.Operator{ID: uuid.New(), Email: "cash@example.com", Role: operator.RoleCashier, Active: true})

	rec := f.do(t, http.MethodGet, "/api/v1/clients", cashier, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := f.login(t, &operator.Operator{ID: uuid.New(), Email: "admin@example.com", Role: operator.RoleAdmin, Active: true})

	rec = f.do(t, http.MethodGet, "/api/v1/clients", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_CreateClient(t *testing.T) {
	f := newFixture(t)

	token := f.login(t, &operator.Operator{
		ID: uuid.New(), Email: "ana@example.com", Role: operator.RoleOperator, Active: true,
		Permissions: operator.Permissions{Clients: true},
	})

	rec := f.do(t, http.MethodPost, "/api/v1/clients", token, `{"email":"x@example.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/clients", token, `{"name":"Juan","kycStatus":"WHATEVER"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	f.clients.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil)

	rec = f.do(t, http.MethodPost, "/api/v1/clients", token, `{"name":"Juan","kycStatus":"BRIDGE_APPROVED"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c client.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	assert.Equal(t, "Juan", c.Name)
	assert.True(t, c.Active)
}

func TestRouter_LatestWithoutMirror(t *testing.T) {
	f := newFixture(t)

	token := f.login(t, &operator.Operator{ID: uuid.New(), Email: "ana@example.com", Role: operator.RoleAdmin, Active: true})

	rec := f.do(t, http.MethodGet, "/api/v1/transactions/latest", token, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
