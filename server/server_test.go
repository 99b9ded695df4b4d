package server_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"synth911/generator"
	"synth911/locale"
	"synth911/models"
	"synth911/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ServerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	srv := server.New(generator.New(), zap.NewNop(), 4)
	suite.router = srv.Routes()
}

func (suite *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ServerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var got server.HealthResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), "healthy", got.Status)
}

func (suite *ServerTestSuite) TestLocales() {
	w := suite.do(http.MethodGet, "/api/v1/locales", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var got server.LocalesResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), locale.Default, got.Default)
	assert.Equal(suite.T(), locale.Supported(), got.Supported)
}

func (suite *ServerTestSuite) TestGenerate_JSON() {
	body := `{"num_records": 25, "start_date": "2024-01-01", "end_date": "2024-01-03", "seed": 9}`
	w := suite.do(http.MethodPost, "/api/v1/generate", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "9", w.Header().Get("X-Seed"))
	assert.NotEmpty(suite.T(), w.Header().Get("X-Run-ID"))

	var rows []map[string]any
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(suite.T(), rows, 25)
	for _, row := range rows {
		assert.Len(suite.T(), row, len(models.Columns))
	}
}

func (suite *ServerTestSuite) TestGenerate_CSV() {
	body := `{"num_records": 10, "start_date": "2024-02-01", "end_date": "2024-02-01", "agencies": ["FIRE"]}`
	w := suite.do(http.MethodPost, "/api/v1/generate?format=csv", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	rows, err := csv.NewReader(w.Body).ReadAll()
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 11)
	assert.Equal(suite.T(), models.Columns, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(suite.T(), "FIRE", row[1])
	}
}

func (suite *ServerTestSuite) TestGenerate_LocaleWarningHeader() {
	body := `{"num_records": 5, "start_date": "2024-01-01", "end_date": "2024-01-01", "locale": "xx_XX"}`
	w := suite.do(http.MethodPost, "/api/v1/generate", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), locale.Default, w.Header().Get("X-Locale"))
	assert.Contains(suite.T(), w.Header().Get("X-Warning"), "xx_XX")
}

func (suite *ServerTestSuite) TestGenerate_Errors() {
	tests := map[string]struct {
		path     string
		body     string
		status   int
		contains string
	}{
		"MalformedJSON": {
			path:     "/api/v1/generate",
			body:     `{"num_records": `,
			status:   http.StatusBadRequest,
			contains: "invalid request body",
		},
		"MissingRecords": {
			path:     "/api/v1/generate",
			body:     `{"start_date": "2024-01-01", "end_date": "2024-01-02"}`,
			status:   http.StatusBadRequest,
			contains: "NumRecords failed required",
		},
		"BadDateLayout": {
			path:     "/api/v1/generate",
			body:     `{"num_records": 5, "start_date": "01/01/2024", "end_date": "2024-01-02"}`,
			status:   http.StatusBadRequest,
			contains: "StartDate failed datetime",
		},
		"EndBeforeStart": {
			path:     "/api/v1/generate",
			body:     `{"num_records": 5, "start_date": "2024-02-01", "end_date": "2024-01-02"}`,
			status:   http.StatusUnprocessableEntity,
			contains: `"field":"end_date"`,
		},
		"ProbabilityMismatch": {
			path:     "/api/v1/generate",
			body:     `{"num_records": 5, "start_date": "2024-01-01", "end_date": "2024-01-02", "agencies": ["LAW", "EMS"], "agency_probabilities": [1]}`,
			status:   http.StatusUnprocessableEntity,
			contains: `"field":"agency_probabilities"`,
		},
		"UnknownFormat": {
			path:     "/api/v1/generate?format=xml",
			body:     `{"num_records": 5, "start_date": "2024-01-01", "end_date": "2024-01-02"}`,
			status:   http.StatusBadRequest,
			contains: `"field":"format"`,
		},
	}

	for name, tt := range tests {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(suite.T(), tt.status, w.Code)
			assert.Contains(suite.T(), w.Body.String(), tt.contains)
		})
	}
}

func (suite *ServerTestSuite) TestMetrics() {
	suite.do(http.MethodPost, "/api/v1/generate", `{"num_records": 3, "start_date": "2024-01-01", "end_date": "2024-01-01"}`)
	w := suite.do(http.MethodGet, "/metrics", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "generator_runs_total")
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
