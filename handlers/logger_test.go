package handlers

import (
	"net/http/httptest"
	"testing"

	"skillbridge/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetLoggerFallsBackToGlobal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Same(t, utils.GetLogger(), getLogger(c))

	custom := zap.NewNop()
	c.Set("logger", custom)
	assert.Same(t, custom, getLogger(c))
}
