package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The canvas page is served from anywhere during development.
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	// done is closed on unregister. send stays open: the run loop may still
	// apply ops this client queued before disconnecting, and replying into a
	// closed channel would panic the tick loop.
	done chan struct{}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", log.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
	s.register(c)
	s.logger.Info("client connected", log.String("remote", conn.RemoteAddr().String()))

	go c.writePump()
	go s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
		s.logger.Info("client disconnected", log.String("remote", c.conn.RemoteAddr().String()))
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var op Op
		if err := json.Unmarshal(data, &op); err != nil {
			c.sendJSON(ErrorMessage{Type: "error", Message: "malformed operation"})
			continue
		}
		s.ops <- queuedOp{client: c, op: op}
	}
}

func (c *client) writePump() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *client) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer: drop rather than stall the tick loop.
	}
}

// apply executes one queued client operation against the sandbox. Errors
// are advisory and flow back only to the submitting client.
func (s *Server) apply(q queuedOp) {
	op := q.op
	var err error

	switch op.Action {
	case OpAdd:
		_, err = s.sandbox.AddComponent(circuit.KindFromString(op.Kind), circuit.Point{X: op.X, Y: op.Y})
	case OpMove:
		err = s.sandbox.MoveComponent(circuit.ComponentID(op.ID), circuit.Point{X: op.X, Y: op.Y})
	case OpRotate:
		err = s.sandbox.RotateComponent(circuit.ComponentID(op.ID), op.Steps)
	case OpDelete:
		err = s.sandbox.RemoveComponent(circuit.ComponentID(op.ID))
	case OpWire:
		if op.From == nil || op.To == nil {
			err = circuit.ErrUnknownTerminal
			break
		}
		_, err = s.sandbox.AddWire(
			circuit.Endpoint{ComponentID: circuit.ComponentID(op.From.ComponentID), Terminal: op.From.Terminal},
			circuit.Endpoint{ComponentID: circuit.ComponentID(op.To.ComponentID), Terminal: op.To.Terminal},
		)
	case OpUnwire:
		err = s.sandbox.RemoveWire(circuit.WireID(op.WireID))
	case OpSwitch:
		err = s.sandbox.SetSwitch(circuit.ComponentID(op.ID), op.Closed)
	case OpVoltage:
		err = s.sandbox.SetSourceVoltage(circuit.ComponentID(op.ID), op.Index)
	case OpResistance:
		err = s.sandbox.SetLoadResistance(circuit.ComponentID(op.ID), op.Index)
	case OpColor:
		err = s.sandbox.SetEmitterColor(circuit.ComponentID(op.ID), op.Index)
	case OpPin:
		err = s.sandbox.SetPin(circuit.ComponentID(op.ID), op.Channel, op.High)
	case OpStart:
		s.sandbox.Start()
	case OpStop:
		s.sandbox.Stop()
	case OpUndo:
		s.sandbox.Undo()
	case OpRedo:
		s.sandbox.Redo()
	case OpClear:
		s.sandbox.ClearAll()
	case OpLoad:
		if op.Document == nil {
			err = circuit.ErrUnsupportedVersion
			break
		}
		err = s.sandbox.LoadDocument(*op.Document)
	case OpSave:
		q.client.sendJSON(DocumentMessage{Type: "document", Document: s.sandbox.SaveDocument()})
	default:
		err = ErrUnknownAction
	}

	if err != nil {
		s.logger.Debug("operation rejected",
			log.String("action", op.Action),
			log.Error(err))
		q.client.sendJSON(ErrorMessage{Type: "error", Action: op.Action, Message: err.Error()})
	}
}

func (s *Server) broadcast(frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("frame marshal failed", log.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}
