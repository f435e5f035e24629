package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gutly/internal/analysis"
	"gutly/internal/auth"
	"gutly/internal/controllers"
	"gutly/internal/middleware"
	"gutly/internal/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type rejectAll struct{}

func (rejectAll) Verify(*http.Request) (string, error) {
	return "", auth.ErrMissingToken
}

func testRouter(repo *mocks.MockMealRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	return NewRouter(middleware.AuthMiddleware(rejectAll{}, logger), Controllers{
		Analyze:     controllers.NewAnalyzeController(&mocks.MockMealScorer{}, analysis.NewNormalizer(logger), logger, false),
		Meal:        controllers.NewMealController(repo, nil, logger, false),
		Insights:    controllers.NewInsightsController(nil),
		Dashboard:   controllers.NewDashboardController(repo, time.UTC, logger, false),
		Auth:        controllers.NewAuthController(nil, logger),
		Preferences: controllers.NewPreferencesController(nil, logger, false),
		Health:      controllers.NewHealthController(nil, nil, "test"),
	}, logger)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	router := testRouter(repo)

	protected := []struct{ method, path, body string }{
		{http.MethodPost, "/analyze", `{"image":"data:image/png;base64,AA"}`},
		{http.MethodGet, "/meals", ""},
		{http.MethodPost, "/meals/save", `{"title":"Bowl","image_url":"data:image/png;base64,AA"}`},
		{http.MethodDelete, "/meals?id=4f5b7c1e-8d7a-4c1e-9a55-1d2f3e4a5b6c", ""},
		{http.MethodGet, "/meals/4f5b7c1e-8d7a-4c1e-9a55-1d2f3e4a5b6c", ""},
		{http.MethodPost, "/insights", ""},
		{http.MethodGet, "/dashboard", ""},
		{http.MethodGet, "/preferences", ""},
		{http.MethodPut, "/preferences", `{}`},
		{http.MethodGet, "/auth/me", ""},
		{http.MethodGet, "/debug/database", ""},
	}
	for _, tc := range protected {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"status":"error","error":"Authentication required"}`, w.Body.String())
		})
	}

	// nothing reached the store
	assert.Empty(t, repo.Calls)
}

func TestHealthIsPublic(t *testing.T) {
	router := testRouter(&mocks.MockMealRepository{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
