package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skillloop/internal/domain"
	resp "skillloop/internal/transport/http/response"
)

// EZ 轻封装：统一出入参绑定、错误映射和响应包裹。
type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// domainCodes 领域错误 → 响应码。没列出的领域错误按 500 处理，
// 存储故障必须以硬错误形式暴露（不吞）。
var domainCodes = map[error]int{
	domain.ErrDomainRejected:     resp.CodeBadRequest,
	domain.ErrEmailTaken:         resp.CodeConflict,
	domain.ErrInvalidCredential:  resp.CodeUnauthorized,
	domain.ErrAccountBanned:      resp.CodeForbidden,
	domain.ErrUserNotFound:       resp.CodeNotFound,
	domain.ErrInvalidSkillEntry:  resp.CodeBadRequest,
	domain.ErrSelfSession:        resp.CodeBadRequest,
	domain.ErrInvalidDuration:    resp.CodeBadRequest,
	domain.ErrSkillNotTaught:     resp.CodeBadRequest,
	domain.ErrInsufficientPoints: resp.CodeBadRequest,
	domain.ErrSessionNotFound:    resp.CodeNotFound,
	domain.ErrInvalidTransition:  resp.CodeConflict,
	domain.ErrNotParticipant:     resp.CodeForbidden,
	domain.ErrParticipantMissing: resp.CodeConflict,
}

func errToResp(err error) resp.Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		return resp.Error(ae.Code, ae.Error())
	}
	for derr, code := range domainCodes {
		if errors.Is(err, derr) {
			return resp.Error(code, derr.Error())
		}
	}
	return resp.Error(resp.CodeServerError, err.Error())
}

// Action 非 CRUD 的一行注册：I 入参，O 出参。
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/sessions/:id/status"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求已登录（检查 userId）
	Roles   []string // 限定角色（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			uid := c.GetString("userId")
			if uid == "" {
				c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 {
				role := c.GetString("role")
				ok := false
				for _, r := range a.Roles {
					if role == r {
						ok = true
						break
					}
				}
				if !ok {
					c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
					return
				}
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			c.JSON(http.StatusOK, errToResp(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
