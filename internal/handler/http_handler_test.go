package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/uid-service/internal/config"
	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
	"github.com/weiawesome/wes-io-live/uid-service/internal/service"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func intPtr(v int) *int { return &v }

func newRouter(t *testing.T, svc service.IDService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func newService(t *testing.T) service.IDService {
	t.Helper()
	profiles, err := service.BuildProfiles(map[string]config.ProfileConfig{
		"default":     {Kind: "random"},
		"correlation": {Kind: "random", Alphabet: "hex16", BitStrength: intPtr(64)},
		"ulid":        {Kind: "ulid"},
	}, config.SnowflakeConfig{}, nil)
	require.NoError(t, err)
	return service.NewIDService(profiles, service.Options{MaxBatch: 50})
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestGenerate(t *testing.T) {
	r := newRouter(t, newService(t))

	code, env := do(t, r, http.MethodPost, "/api/v1/profiles/correlation/ids", "")
	require.Equal(t, http.StatusOK, code)
	var res IDsResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "correlation", res.Profile)
	require.Len(t, res.IDs, 1)
	assert.Len(t, res.IDs[0], 16)

	code, env = do(t, r, http.MethodPost, "/api/v1/profiles/default/ids", `{"count": 5}`)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Len(t, res.IDs, 5)
}

func TestGenerateErrors(t *testing.T) {
	r := newRouter(t, newService(t))

	code, env := do(t, r, http.MethodPost, "/api/v1/profiles/missing/ids", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, env = do(t, r, http.MethodPost, "/api/v1/profiles/default/ids", `{"count": 51}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/profiles/default/ids", `{"count": "many"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGenerateCustom(t *testing.T) {
	r := newRouter(t, newService(t))

	code, env := do(t, r, http.MethodPost, "/api/v1/ids", `{"alphabet": "01", "length": 12, "count": 3}`)
	require.Equal(t, http.StatusOK, code)
	var res IDsResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.IDs, 3)
	for _, id := range res.IDs {
		assert.Len(t, id, 12)
		assert.Empty(t, strings.Trim(id, "01"))
	}

	tests := map[string]string{
		"conflicting size":  `{"bit_strength": 64, "length": 10}`,
		"non-string":        `{"alphabet": 12}`,
		"too short":         `{"alphabet": "x"}`,
		"bad bit strength":  `{"bit_strength": 60}`,
		"bad output length": `{"length": -1}`,
		"huge length":       `{"length": 2000000000000000000}`,
		"huge bit strength": `{"bit_strength": 4611686018427387904}`,
		"over size cap":     `{"bit_strength": 8192}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			code, env := do(t, r, http.MethodPost, "/api/v1/ids", body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "BAD_REQUEST", env.Error.Code)
		})
	}
}

func TestValidateAndInspect(t *testing.T) {
	r := newRouter(t, newService(t))

	_, env := do(t, r, http.MethodPost, "/api/v1/profiles/ulid/ids", "")
	var res IDsResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	id := res.IDs[0]

	code, env := do(t, r, http.MethodGet, "/api/v1/profiles/ulid/validate?id="+id, "")
	require.Equal(t, http.StatusOK, code)
	var v ValidateResponse
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.True(t, v.Valid)

	code, env = do(t, r, http.MethodGet, "/api/v1/profiles/ulid/validate?id=nope", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.False(t, v.Valid)
	assert.NotEmpty(t, v.Reason)

	code, env = do(t, r, http.MethodGet, "/api/v1/profiles/ulid/inspect?id="+id, "")
	require.Equal(t, http.StatusOK, code)
	var info generator.Inspection
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "ulid", info.Kind)
	assert.NotZero(t, info.TimestampMs)

	code, _ = do(t, r, http.MethodGet, "/api/v1/profiles/ulid/inspect?id=nope", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListProfiles(t *testing.T) {
	r := newRouter(t, newService(t))

	code, env := do(t, r, http.MethodGet, "/api/v1/profiles", "")
	require.Equal(t, http.StatusOK, code)
	var profiles []service.ProfileInfo
	require.NoError(t, json.Unmarshal(env.Data, &profiles))
	require.Len(t, profiles, 3)
	assert.Equal(t, "correlation", profiles[0].Name)
	assert.Equal(t, "hex16", profiles[0].Alphabet)
	assert.Equal(t, 16, profiles[0].Length)
}

// stubService fails every generation with err.
type stubService struct {
	service.IDService
	err error
}

func (s stubService) GenerateBatch(context.Context, string, int) ([]string, error) {
	return nil, s.err
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
		want string
	}{
		{fmt.Errorf("%w: pool exhausted", uid.ErrEntropyUnavailable), http.StatusServiceUnavailable, "ENTROPY_UNAVAILABLE"},
		{service.ErrCollision, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		r := newRouter(t, stubService{err: tt.err})
		code, env := do(t, r, http.MethodPost, "/api/v1/profiles/default/ids", "")
		assert.Equal(t, tt.code, code)
		assert.Equal(t, tt.want, env.Error.Code)
	}
}
