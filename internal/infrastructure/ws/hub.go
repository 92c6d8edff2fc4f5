package ws

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/ports"
	"github.com/tallerpro/taller-api/pkg/logger"
)

// Hub mantiene las conexiones websocket del front de escritorio y les
// difunde los eventos de dominio. Las notificaciones son best-effort: un
// cliente lento se desconecta en lugar de frenar al resto.
type Hub struct {
	log        *logger.Logger
	clients    map[*websocket.Conn]chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
}

var _ ports.Notifier = (*Hub)(nil)

// NewHub crea el hub. Llamar Run en una goroutine antes de aceptar conexiones.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*websocket.Conn]chan []byte),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
	}
}

// Run atiende registro, baja y difusión. Es el único dueño del mapa de
// clientes, así que no necesita mutex.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			out := make(chan []byte, 16)
			h.clients[conn] = out
			go writeLoop(conn, out)
			h.log.Debug().Int("clientes", len(h.clients)).Msg("ws cliente conectado")
		case conn := <-h.unregister:
			if out, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				close(out)
			}
		case msg := <-h.broadcast:
			for conn, out := range h.clients {
				select {
				case out <- msg:
				default:
					// Buffer lleno: el cliente no drena, se le da de baja.
					delete(h.clients, conn)
					close(out)
				}
			}
		}
	}
}

// Broadcast serializa el evento y lo difunde a todos los clientes conectados.
// Nunca bloquea ni devuelve error: las notificaciones no afectan la operación
// que las originó.
func (h *Hub) Broadcast(ev ports.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("type", ev.Type).Msg("serializar evento ws")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("type", ev.Type).Msg("buffer de difusión lleno, evento descartado")
	}
}

// Handler devuelve el handler de Fiber para la ruta /ws.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.register <- conn
		defer func() { h.unregister <- conn }()
		// Solo se difunde; se lee para detectar el cierre del cliente.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// Upgrade valida que la petición sea un upgrade websocket.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func writeLoop(conn *websocket.Conn, out <-chan []byte) {
	defer conn.Close()
	for msg := range out {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
