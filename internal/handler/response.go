package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/taskrule"
)

// Response helpers

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

func SuccessPaged(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"list":      list,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

func Error(c *gin.Context, httpCode int, code int, message string) {
	c.JSON(httpCode, gin.H{
		"code":    code,
		"message": message,
		"data":    nil,
	})
}

func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, 50001, message)
}

// Fail maps any service or core error to its fixed HTTP status: typed
// validation errors to 400 with a per-kind code, coded errors by their
// prefix range, everything else to a generic 500.
func Fail(c *gin.Context, err error) {
	var verr *taskrule.ValidationError
	if errors.As(err, &verr) {
		BadRequest(c, validationCode(verr.Kind), verr.Detail)
		return
	}

	code, msg := parseErrorCode(err)
	switch {
	case code >= 40300 && code < 40400:
		Forbidden(c, code, msg)
	case code >= 40400 && code < 40500:
		NotFound(c, code, msg)
	case code >= 40900 && code < 41000:
		Conflict(c, code, msg)
	case code >= 40000 && code < 40100:
		BadRequest(c, code, msg)
	default:
		InternalError(c, "internal error")
	}
}

func validationCode(kind taskrule.ErrorKind) int {
	switch kind {
	case taskrule.ErrIllegalParentType:
		return 40021
	case taskrule.ErrOutOfRange:
		return 40022
	case taskrule.ErrCrossSolutionDependency:
		return 40023
	case taskrule.ErrDependencyOrdering:
		return 40024
	case taskrule.ErrUserNotInTeam:
		return 40025
	}
	return 40001
}

func parseID(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 64)
	return uint(id)
}

func parsePage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func parseErrorCode(err error) (int, string) {
	msg := err.Error()
	if len(msg) > 5 && msg[5] == ':' {
		code, e := strconv.Atoi(msg[:5])
		if e == nil {
			return code, msg[6:]
		}
	}
	return 50001, msg
}
