package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the error response shape. Error carries the message clients match on.
type ErrorBody struct {
	Error  string            `json:"error"`
	Code   ErrCode           `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Message is the body of endpoints that only acknowledge an action.
type Message struct {
	Message string `json:"message"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends the data as the plain JSON body with the given status code.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends an error response; the status comes from the code's table entry.
func Fail(c *gin.Context, code ErrCode) {
	c.JSON(StatusOf(code), newErrorBody(code, nil))
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, code ErrCode, fields map[string]string) {
	c.JSON(StatusOf(code), newErrorBody(code, fields))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, code ErrCode) {
	c.AbortWithStatusJSON(StatusOf(code), newErrorBody(code, nil))
}

func newErrorBody(code ErrCode, fields map[string]string) ErrorBody {
	return ErrorBody{
		Error:  GetMessage(code),
		Code:   code,
		Fields: fields,
	}
}
