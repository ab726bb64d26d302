package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instagram-gateway/domain/dto"
	"instagram-gateway/interfaces/tools"
)

type IToolHandler interface {
	List(c *gin.Context)
	Invoke(c *gin.Context)
}

type ToolHandler struct {
	Registry *tools.Registry
}

func NewToolHandler(registry *tools.Registry) IToolHandler {
	return &ToolHandler{Registry: registry}
}

// List returns every registered tool with its parameter schema.
func (h *ToolHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.Registry.Describe()})
}

// Invoke dispatches one tool call. The body is a flat JSON object of tool
// arguments; an empty body means no arguments. Tool failures still answer
// 200 with successful=false; only an unreadable body gets a 4xx.
func (h *ToolHandler) Invoke(c *gin.Context) {
	name := c.Param("name")
	args := map[string]interface{}{}
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid JSON body: %v", err))
			return
		}
	}
	c.JSON(http.StatusOK, h.Registry.Dispatch(c.Request.Context(), name, args))
}
