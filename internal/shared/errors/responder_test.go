package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
	}, handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/7", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_UsesMapper(t *testing.T) {
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errGone) {
			return NewNotFoundProblem("thing", 7), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errGone) })

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, "/things/7", problem.Instance)
	assert.Equal(t, "req-1", problem.Extensions["requestId"])
	assert.Equal(t, "thing", problem.Extensions["resourceType"])
}

func TestResponder_HidesUnmappedCause(t *testing.T) {
	responder := NewChainedResponder("https://errors.example.com")

	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("pq: password authentication failed"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://errors.example.com"+TypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "password")
}

func TestWithExtension_DoesNotShareTemplate(t *testing.T) {
	_ = ErrBadRequest.WithExtension("field", "x")
	assert.Nil(t, ErrBadRequest.Extensions)
}
