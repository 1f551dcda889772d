package controller

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seonkim/beanshop-backend/config"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/service"
	"github.com/seonkim/beanshop-backend/internal/middleware"
	"github.com/seonkim/beanshop-backend/internal/rsdata"
	"github.com/seonkim/beanshop-backend/pkg/redis"
	"github.com/seonkim/beanshop-backend/pkg/util"
)

type UserController struct {
	userService service.UserService
	jwtConfig   *config.JWTConfig
	cookie      *config.CookieConfig
}

func NewUserController(userService service.UserService, jwtConfig *config.JWTConfig, cookie *config.CookieConfig) *UserController {
	return &UserController{
		userService: userService,
		jwtConfig:   jwtConfig,
		cookie:      cookie,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address" binding:"omitempty,max=300"`
	Role     string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

// role 미지정 시 일반 사용자로 가입된다.
func (req *RegisterRequest) role() model.UserRole {
	if req.Role == "" {
		return model.RoleUser
	}
	return model.UserRole(req.Role)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /users
func (ctrl *UserController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	user, tokens, err := ctrl.userService.Register(req.Name, req.Email, req.Password, req.Address, req.role())
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			rsdata.Send(c, rsdata.New(rsdata.CodeEmailExists, "이미 존재하는 이메일입니다", nil))
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		rsdata.Internal(c)
		return
	}

	ctrl.setAuthCookies(c, tokens)

	rsdata.Created(c, "회원가입이 완료되었습니다", gin.H{
		"user":  user,
		"token": tokens,
	})
}

// Login handles POST /users/login
func (ctrl *UserController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		rsdata.BadRequest(c, "입력값이 올바르지 않습니다")
		return
	}

	user, tokens, err := ctrl.userService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			rsdata.NotFound(c, "존재하지 않는 사용자입니다")
		case errors.Is(err, service.ErrPasswordMismatch):
			rsdata.Unauthorized(c, "비밀번호가 일치하지 않습니다")
		default:
			log.Error("Login failed", err, map[string]interface{}{
				"email": req.Email,
			})
			rsdata.Internal(c)
		}
		return
	}

	ctrl.setAuthCookies(c, tokens)

	rsdata.OK(c, "로그인되었습니다", gin.H{
		"user":  user,
		"token": tokens,
	})
}

// Logout handles POST /users/logout. 쿠키를 비우고 남은 유효 기간 동안
// 두 토큰을 블랙리스트에 등록한다.
func (ctrl *UserController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		token, err := c.Cookie(name)
		if err != nil || token == "" {
			continue
		}
		claims, err := util.ValidateToken(token, ctrl.jwtConfig.Secret)
		if err != nil || claims.ExpiresAt == nil {
			continue
		}
		remaining := time.Until(claims.ExpiresAt.Time)
		if remaining <= 0 {
			continue
		}
		if err := redis.BlacklistToken(c.Request.Context(), token, remaining); err != nil {
			log.Warn("Failed to blacklist token on logout", map[string]interface{}{
				"cookie": name,
				"error":  err.Error(),
			})
		}
	}

	ctrl.clearAuthCookies(c)

	rsdata.Send(c, rsdata.New(rsdata.CodeLogout, "로그아웃되었습니다", nil))
}

// Delete handles DELETE /users?email=
func (ctrl *UserController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Query("email")
	if email == "" {
		rsdata.BadRequest(c, "이메일을 입력해주세요")
		return
	}

	if err := ctrl.userService.DeleteUser(email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			rsdata.NotFound(c, "존재하지 않는 사용자입니다")
			return
		}
		log.Error("Failed to delete user", err, map[string]interface{}{
			"email": email,
		})
		rsdata.Internal(c)
		return
	}

	rsdata.Send(c, rsdata.New(rsdata.CodeDeleted, "회원 탈퇴가 완료되었습니다", nil))
}

func (ctrl *UserController) setAuthCookies(c *gin.Context, tokens *util.TokenPair) {
	c.SetCookie(
		middleware.AccessTokenCookie,
		tokens.AccessToken,
		int(ctrl.jwtConfig.AccessTokenExpiry.Seconds()),
		"/",
		ctrl.cookie.Domain,
		ctrl.cookie.Secure,
		true,
	)
	c.SetCookie(
		middleware.RefreshTokenCookie,
		tokens.RefreshToken,
		int(ctrl.jwtConfig.RefreshTokenExpiry.Seconds()),
		"/",
		ctrl.cookie.Domain,
		ctrl.cookie.Secure,
		true,
	)
}

func (ctrl *UserController) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", ctrl.cookie.Domain, ctrl.cookie.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", ctrl.cookie.Domain, ctrl.cookie.Secure, true)
}
