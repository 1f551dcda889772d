package rsdata

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Result codes. 하이픈 앞의 숫자가 HTTP 상태 코드가 된다.
const (
	CodeOK           = "200-OK"
	CodeCreated      = "201-CREATED"
	CodeLogout       = "200-LOGOUT"
	CodeDeleted      = "200-DELETED"
	CodeBadRequest   = "400-BAD-REQUEST"
	CodeUnauthorized = "401-UNAUTHORIZED"
	CodeForbidden    = "403-FORBIDDEN"
	CodeNotFound     = "404-NOT-FOUND"
	CodeEmailExists  = "409-EMAIL-EXISTS"
	CodeInternal     = "500-INTERNAL-SERVER-ERROR"

	// 위시리스트 전용 코드: 신규 등록 / 수량 증가 / 항목 없음
	CodeWishCreated   = "201-1"
	CodeWishIncreased = "200-1"
	CodeWishNotFound  = "404-1"
)

// RsData is the uniform response envelope for every API endpoint.
type RsData struct {
	ResultCode string      `json:"resultCode"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

func New(resultCode, msg string, data interface{}) RsData {
	return RsData{
		ResultCode: resultCode,
		Msg:        msg,
		Data:       data,
	}
}

// StatusCode derives the HTTP status from the result code's numeric prefix.
// Unparseable codes default to 200.
func (r RsData) StatusCode() int {
	prefix, _, _ := strings.Cut(r.ResultCode, "-")
	status, err := strconv.Atoi(prefix)
	if err != nil || status < 100 || status > 599 {
		return 200
	}
	return status
}

// Send writes the envelope with the status derived from its result code.
func Send(c *gin.Context, rs RsData) {
	c.JSON(rs.StatusCode(), rs)
}

// OK responds with 200-OK.
func OK(c *gin.Context, msg string, data interface{}) {
	Send(c, New(CodeOK, msg, data))
}

// Created responds with 201-CREATED.
func Created(c *gin.Context, msg string, data interface{}) {
	Send(c, New(CodeCreated, msg, data))
}

// BadRequest responds with 400-BAD-REQUEST and no payload.
func BadRequest(c *gin.Context, msg string) {
	Send(c, New(CodeBadRequest, msg, nil))
}

// Unauthorized responds with 401-UNAUTHORIZED and no payload.
func Unauthorized(c *gin.Context, msg string) {
	Send(c, New(CodeUnauthorized, msg, nil))
}

// Forbidden responds with 403-FORBIDDEN and no payload.
func Forbidden(c *gin.Context, msg string) {
	Send(c, New(CodeForbidden, msg, nil))
}

// NotFound responds with 404-NOT-FOUND and no payload.
func NotFound(c *gin.Context, msg string) {
	Send(c, New(CodeNotFound, msg, nil))
}

// Internal responds with a fixed 500 envelope. 내부 오류 상세는 노출하지 않는다.
func Internal(c *gin.Context) {
	Send(c, New(CodeInternal, "서버 오류가 발생했습니다", nil))
}
