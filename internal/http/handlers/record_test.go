package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/growthdesk-backend/internal/data/repos"
	"github.com/yungbote/growthdesk-backend/internal/data/repos/testutil"
	"github.com/yungbote/growthdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/growthdesk-backend/internal/services"
)

func recordRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := services.NewRecordService(db, log, repos.NewRecordRepo(db, log), services.NewRecordNotifier(nil))
	h := NewRecordHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: uid})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	r.GET("/api/collections/:collection", h.List)
	r.POST("/api/collections/:collection", h.Create)
	r.GET("/api/collections/:collection/:id", h.Get)
	r.PATCH("/api/collections/:collection/:id", h.Patch)
	r.DELETE("/api/collections/:collection/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type recordBody struct {
	Record struct {
		ID         string         `json:"id"`
		Collection string         `json:"collection"`
		Data       map[string]any `json:"data"`
	} `json:"record"`
}

func TestRecordHandlerCRUD(t *testing.T) {
	r := recordRouter(t)

	rec := do(r, http.MethodPost, "/api/collections/expenses", "u1", `{"description":"Conference ticket","amount":120}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created recordBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "expenses", created.Record.Collection)
	assert.Equal(t, "Conference ticket", created.Record.Data["description"])

	path := "/api/collections/expenses/" + created.Record.ID
	rec = do(r, http.MethodPatch, path, "u1", `{"amount":95.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var patched recordBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.Equal(t, 95.5, patched.Record.Data["amount"])
	assert.Equal(t, "Conference ticket", patched.Record.Data["description"])

	rec = do(r, http.MethodGet, "/api/collections/expenses?limit=10", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Records, 1)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, path, "u2", "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, path, "u1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, path, "u1", "").Code)
}

func TestRecordHandlerErrors(t *testing.T) {
	r := recordRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		status int
		code   string
	}{
		{name: "unknown collection", method: http.MethodPost, path: "/api/collections/passwords", user: "u1", body: `{}`, status: http.StatusBadRequest, code: "unknown_collection"},
		{name: "non-object body", method: http.MethodPost, path: "/api/collections/todos", user: "u1", body: `["x"]`, status: http.StatusBadRequest, code: "invalid_record"},
		{name: "bad limit", method: http.MethodGet, path: "/api/collections/todos?limit=-1", user: "u1", status: http.StatusBadRequest, code: "invalid_limit"},
		{name: "anonymous", method: http.MethodGet, path: "/api/collections/todos", status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "bad id", method: http.MethodDelete, path: "/api/collections/todos/nope", user: "u1", status: http.StatusNotFound, code: "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(r, tc.method, tc.path, tc.user, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			var env struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}
