package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/restapi"
)

func newTestEcho(t *testing.T, auth *jwt.Auth) (*echo.Echo, *ledger.Ledger) {
	l := ledger.New(mapdb.NewMapDB(), log.NewLogger().NewChildLogger(t.Name()))

	middlewareFunc, err := apiMiddleware(auth, []string{"/health", "/api/routes"}, []string{"/api/*"})
	require.NoError(t, err)

	e := httpserver.NewEcho(log.NewLogger().NewChildLogger(t.Name()), nil, false)
	e.Use(middlewareFunc)

	routeManager := restapi.NewRestRouteManager(e)
	setupRoutes(e, l, routeManager)

	routeManager.AddRoute("ledger/v1").GET("/secret", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	return e, l
}

func serve(e *echo.Echo, path string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAPIMiddleware(t *testing.T) {
	auth, err := jwt.NewAuth("salt", 0, "stake-ledger")
	require.NoError(t, err)

	token, err := auth.IssueJWT("wasm1ownerxyz")
	require.NoError(t, err)

	e, l := newTestEcho(t, auth)

	require.Equal(t, http.StatusServiceUnavailable, serve(e, "/health", "").Code)
	require.NoError(t, l.Initialize(&ledger.Config{Owner: "wasm1ownerxyz"}))
	require.Equal(t, http.StatusOK, serve(e, "/health", "").Code)

	rec := serve(e, "/api/routes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"routes":["ledger/v1"]}`, rec.Body.String())

	require.Equal(t, http.StatusUnauthorized, serve(e, "/api/ledger/v1/secret", "").Code)
	require.Equal(t, http.StatusNoContent, serve(e, "/api/ledger/v1/secret", token).Code)

	// neither public nor protected
	require.Equal(t, http.StatusForbidden, serve(e, "/debug", token).Code)
}

func TestAPIMiddleware_WithoutAuth(t *testing.T) {
	e, _ := newTestEcho(t, nil)

	require.Equal(t, http.StatusOK, serve(e, "/api/routes", "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(e, "/api/ledger/v1/secret", "").Code)
}
