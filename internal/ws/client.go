package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/sse"
)

// Client is one WebSocket connection of a player in a chat
type Client struct {
	ChatID string
	Player models.Player
	Conn   *websocket.Conn

	send   chan []byte
	events chan sse.Message
	done   chan struct{}
	config Config
	log    zerolog.Logger
}

func newClient(chatID string, player models.Player, conn *websocket.Conn, events chan sse.Message, cfg Config, log zerolog.Logger) *Client {
	return &Client{
		ChatID: chatID,
		Player: player,
		Conn:   conn,
		send:   make(chan []byte, 64),
		events: events,
		done:   make(chan struct{}),
		config: cfg,
		log:    log,
	}
}

// ReadPump feeds inbound frames to handler until the connection drops
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		close(c.done)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		handler(c, message)
	}
}

// WritePump writes replies and hub events and keeps the connection alive
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			if err := c.write(message); err != nil {
				return
			}

		case ev := <-c.events:
			data, err := json.Marshal(EventFrame{Type: TypeEvent, Event: ev.Event, Data: json.RawMessage(ev.Data)})
			if err != nil {
				c.log.Error().Err(err).Str("event", ev.Event).Msg("encode event frame")
				continue
			}
			if err := c.write(data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(message []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
	w, err := c.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	w.Write(message)
	return w.Close()
}

// SendMessage queues a reply frame. A full queue drops the frame.
func (c *Client) SendMessage(message any) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
	default:
		c.log.Debug().Msg("reply dropped, send queue full")
	}
	return nil
}
