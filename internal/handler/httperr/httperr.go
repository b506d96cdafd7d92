package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the error body of every non-2xx answer:
//
//	{"error":{"message":"Insufficient capacity"},"detail":{...}}
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// Internal is the body for anything that must not leak its cause.
func Internal() Response {
	return NewResponse(http.StatusInternalServerError, "Internal server error", nil)
}

// AbortWithError writes the body and records err on the context, so request
// logging still sees the original cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
