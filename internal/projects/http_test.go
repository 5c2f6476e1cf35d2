package projects

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marquee/internal/docstore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) *mux.Router {
	t.Helper()
	s, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	r := mux.NewRouter()
	NewHTTP(s).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfigRoundTrip(t *testing.T) {
	r := newTestAPI(t)

	w := do(t, r, http.MethodGet, "/api/config?project=p1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())

	w = do(t, r, http.MethodPost, "/api/config?project=p1", `{"title":"PANTRY","number":"12"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/config?project=p1", "")
	assert.JSONEq(t, `{"title":"PANTRY","number":"12"}`, w.Body.String())
}

func TestConfigDefaultsToDefaultProject(t *testing.T) {
	r := newTestAPI(t)

	do(t, r, http.MethodPost, "/api/config", `{"theme":"noir"}`)

	w := do(t, r, http.MethodGet, "/api/config?project=default", "")
	assert.JSONEq(t, `{"theme":"noir"}`, w.Body.String())
}

func TestScheduleRoundTrip(t *testing.T) {
	r := newTestAPI(t)

	w := do(t, r, http.MethodGet, "/api/schedule?project=p1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	rules := `[{"id":"r1","name":"lunch","startTime":"11:00","endTime":"14:00","active":true,"configOverrides":{"title":"LUNCH"}}]`
	w = do(t, r, http.MethodPost, "/api/schedule?project=p1", rules)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/schedule?project=p1", "")
	assert.JSONEq(t, rules, w.Body.String())
}

func TestScheduleRejectsNonArray(t *testing.T) {
	r := newTestAPI(t)

	w := do(t, r, http.MethodPost, "/api/schedule?project=p1", `{"not":"an array"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// ничего не записалось
	w = do(t, r, http.MethodGet, "/api/schedule?project=p1", "")
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestConfigRejectsNonObject(t *testing.T) {
	r := newTestAPI(t)

	w := do(t, r, http.MethodPost, "/api/config?project=p1", `[1,2,3]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProject(t *testing.T) {
	r := newTestAPI(t)

	w := do(t, r, http.MethodPost, "/api/projects", `{"projectId":"cafe"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/projects", `{"projectId":"cafe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/projects", `{"projectId":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/projects", "")
	assert.JSONEq(t, `["cafe"]`, w.Body.String())
}
