package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/francosciascia/expert-giggle/middlewares"
	"github.com/francosciascia/expert-giggle/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsPingInterval = 25 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// PlanWSController streams weekly plan changes over a websocket.
type PlanWSController struct {
	Hub      *services.PlanHub
	upgrader websocket.Upgrader
}

// NewPlanWSController accepts upgrades only from the given origins; an empty
// list accepts any origin.
func NewPlanWSController(hub *services.PlanHub, origins []string) *PlanWSController {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &PlanWSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// wsClient serializes writes; gorilla connections allow one writer at a time.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsClient) Send(msg []byte) error {
	return w.write(websocket.TextMessage, msg)
}

func (w *wsClient) write(kind int, msg []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return w.conn.WriteMessage(kind, msg)
}

func (pc *PlanWSController) Stream(c *gin.Context) {
	conn, err := pc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		middlewares.Logger(c).Info("plan.ws.upgrade_failed", "err", err)
		return
	}
	cl := &wsClient{conn: conn}
	pc.Hub.Register(cl)

	done := make(chan struct{})
	defer func() {
		close(done)
		pc.Hub.Unregister(cl)
		_ = conn.Close()
	}()

	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.write(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// the read loop only notices the client going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
