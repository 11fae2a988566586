package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/rs/zerolog/log"

	"madn/board"
	"madn/communication"
	"madn/game"
)

const (
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server streams the renderer calls of a match to websocket watchers and serves the
// latest state snapshot. The renderer methods may be called from the match goroutine
// while requests are served.
type Server struct {
	router *way.Router

	mutex   sync.RWMutex
	state   *game.State
	history []communication.Event // events of the current match, replayed to new watchers
	clients map[*client]struct{}
	seq     int
}

type client struct {
	conn *websocket.Conn
	send chan communication.Event
}

func NewServer() *Server {
	s := &Server{clients: map[*client]struct{}{}}
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodGet, communication.EventsPath, s.handleEvents)
	s.router.HandleFunc(http.MethodGet, communication.StatePath, s.handleGetState)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// DrawBoard starts a new match: watchers that join later only see events from here on.
func (s *Server) DrawBoard(size board.Size) {
	s.publish(communication.NewBoardEvent(size))
}

func (s *Server) PlacePiece(v game.PieceView) {
	s.publish(communication.NewPieceEvent(v))
}

func (s *Server) DrawWinner(c board.Color) {
	s.publish(communication.NewWinnerEvent(c))
}

// UpdateState replaces the snapshot served on the state endpoint.
func (s *Server) UpdateState(st game.State) {
	cp := st.Copy()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = &cp
}

func (s *Server) State() (game.State, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.state == nil {
		return game.State{}, false
	}
	return s.state.Copy(), true
}

// Watchers returns the number of connected websocket clients.
func (s *Server) Watchers() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.clients)
}

// Close disconnects every watcher. The server keeps accepting new ones.
func (s *Server) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for c := range s.clients {
		s.drop(c)
	}
}

func (s *Server) publish(e communication.Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.seq++
	e.Seq = s.seq
	if e.Type == communication.BoardEvent {
		s.history = nil
	}
	s.history = append(s.history, e)

	for c := range s.clients {
		select {
		case c.send <- e:
		default:
			log.Warn().Msgf("dropping slow watcher %s", c.conn.RemoteAddr())
			s.drop(c)
		}
	}
}

// drop must be called with the mutex held.
func (s *Server) drop(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	st, ok := s.State()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Error().Err(err).Msg("failed to encode state")
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan communication.Event, sendBuffer)}

	s.mutex.Lock()
	backlog := append([]communication.Event(nil), s.history...)
	s.clients[c] = struct{}{}
	s.mutex.Unlock()
	log.Info().Msgf("watcher %s connected", conn.RemoteAddr())

	go c.writePump(backlog)
	c.readPump()

	s.mutex.Lock()
	s.drop(c)
	s.mutex.Unlock()
	log.Info().Msgf("watcher %s disconnected", conn.RemoteAddr())
}

func (c *client) writePump(backlog []communication.Event) {
	defer c.conn.Close()
	for _, e := range backlog {
		if err := c.write(e); err != nil {
			return
		}
	}
	for e := range c.send {
		if err := c.write(e); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *client) write(e communication.Event) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(e)
}

// readPump discards incoming messages until the connection fails or is closed.
func (c *client) readPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
