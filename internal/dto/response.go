package dto

import (
	"fmt"
	"net/http"
	"strings"

	res "sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.SuccessResponse(data))
}

// ErrorResponse 错误码本身是 HTTP 状态码时直接使用，其余业务码一律 400
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(httpStatus(err.Code), res.ErrorResponse(err.Code, err.Msg))
}

// AbortWithError 中间件使用，终止后续处理
func AbortWithError(c *gin.Context, err *res.BusinessError) {
	c.AbortWithStatusJSON(httpStatus(err.Code), res.ErrorResponse(err.Code, err.Msg))
}

func httpStatus(code res.ResponseCode) int {
	if code >= 400 && code < 600 {
		return int(code)
	}
	if code == res.Fail {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' wajib diisi", jsonField)
		case "email":
			message = fmt.Sprintf("Field '%s' harus berupa email yang valid", jsonField)
		case "min":
			message = fmt.Sprintf("Field '%s' minimal %s karakter", jsonField, firstErr.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' maksimal %s karakter", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("Field '%s' tidak valid: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	// 如果不是 validation 错误，返回原始错误消息
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("Format permintaan tidak valid: "+err.Error()),
	))
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
