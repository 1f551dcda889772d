package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/rsdata"
)

// AccessLevel is the minimum authentication level a route requires.
type AccessLevel int

const (
	AccessPublic        AccessLevel = iota // 누구나 접근 가능
	AccessAuthenticated                    // 로그인 필요
	AccessAdmin                            // 관리자 권한 필요
)

// RoutePolicy binds a registered route pattern to its required access
// level. Path는 gin의 FullPath 템플릿(:param 포함)과 일치해야 한다.
type RoutePolicy struct {
	Method string
	Path   string
	Access AccessLevel
}

// Authorize enforces a declarative route policy table. Routes missing
// from the table default to requiring authentication, so forgetting an
// entry fails closed rather than open.
func (m *AuthMiddleware) Authorize(policies []RoutePolicy) gin.HandlerFunc {
	table := make(map[string]AccessLevel, len(policies))
	for _, p := range policies {
		table[p.Method+" "+p.Path] = p.Access
	}

	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		access, ok := table[c.Request.Method+" "+c.FullPath()]
		if !ok {
			access = AccessAuthenticated
		}

		if access == AccessPublic {
			c.Next()
			return
		}

		role, authenticated := GetUserRole(c)
		if !authenticated {
			log.Warn("Unauthenticated request rejected", map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			})
			rsdata.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		if access == AccessAdmin && role != model.RoleAdmin {
			userID, _ := GetUserID(c)
			log.Warn("Insufficient permissions", map[string]interface{}{
				"user_id":   userID,
				"user_role": role,
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
			})
			rsdata.Forbidden(c, "접근 권한이 없습니다")
			c.Abort()
			return
		}

		c.Next()
	}
}
