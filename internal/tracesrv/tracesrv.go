// Package tracesrv broadcasts the CPU's per-instruction trace lines to
// any number of connected websocket clients — a debugging aid, not part
// of the emulator's documented external contract.
package tracesrv

import (
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/tevino/abool"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server accepts websocket connections on addr and fans out every
// Broadcast call to all of them.
type Server struct {
	addr string
	log  logrus.FieldLogger

	running *abool.AtomicBool
	server  *http.Server

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New returns a Server bound to addr; Start must be called to actually
// listen.
func New(addr string, log logrus.FieldLogger) *Server {
	return &Server{
		addr:    addr,
		log:     log,
		running: abool.New(),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Start begins listening in the background. It is safe to call Stop even
// if Start failed.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/trace", s.handleConn)
	s.server = &http.Server{Addr: s.addr, Handler: mux}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.running.Set()
	go func() {
		_ = s.server.Serve(ln)
	}()
	return nil
}

// Stop closes every connected client and shuts down the listener.
func (s *Server) Stop() {
	if !s.running.IsSet() {
		return
	}
	s.running.UnSet()

	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()

	if s.server != nil {
		s.server.Close()
	}
}

// Broadcast sends line to every connected client. Broadcast is a no-op,
// not an error, when the server isn't running or has no clients — trace
// output should never block emulation.
func (s *Server) Broadcast(line string) {
	if !s.running.IsSet() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("tracesrv: upgrade failed")
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
}
