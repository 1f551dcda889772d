package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/seonkim/beanshop-backend/internal/middleware"
	"github.com/seonkim/beanshop-backend/internal/rsdata"
	"github.com/seonkim/beanshop-backend/internal/websocket"
)

// OrderFeedController upgrades admin connections onto the live order
// event feed.
type OrderFeedController struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
}

func NewOrderFeedController(hub *websocket.Hub, allowedOrigins []string) *OrderFeedController {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[origin] = true
	}

	return &OrderFeedController{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// 비브라우저 클라이언트는 Origin 헤더가 없다
				return origin == "" || originSet[origin]
			},
		},
	}
}

// Connect handles GET /ws/orders. 인가는 라우트 정책에서 관리자로
// 제한된다.
func (ctrl *OrderFeedController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		rsdata.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade order feed connection", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := &websocket.Client{
		Hub:    ctrl.hub,
		Conn:   &websocket.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
