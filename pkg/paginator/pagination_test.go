package paginator_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"arogya/queue-service/pkg/paginator"
)

func paginate(t *testing.T, query string) paginator.Paginate {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return paginator.New(c)
}

func TestNew_Defaults(t *testing.T) {
	p := paginate(t, "")
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 10, p.Size)
	assert.Equal(t, 1, p.Page)
}

func TestNew_Offsets(t *testing.T) {
	p := paginate(t, "page=3&page_size=20")
	assert.Equal(t, 40, p.From)
	assert.Equal(t, 20, p.Size)
}

func TestNew_BadInputFallsBack(t *testing.T) {
	p := paginate(t, "page=x&page_size=-5")
	assert.Equal(t, 10, p.Size)
	assert.Equal(t, 0, p.From)
}
