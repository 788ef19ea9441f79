package feed

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/floodfield/flood"
	"github.com/katalvlaran/floodfield/raster"
)

// maxMessageSize bounds inbound WebSocket frames; Params are tiny.
const maxMessageSize = 4096

// Server runs flood simulations over a fixed grid on behalf of clients.
type Server struct {
	hf     *raster.HeightField
	mask   *raster.SourceMask
	base   []flood.Option
	logger *slog.Logger

	upgrader websocket.Upgrader

	mu     sync.Mutex
	cached *Message
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithFloodOptions sets the parameters of the default run. Client Params are
// applied on top of them.
func WithFloodOptions(opts ...flood.Option) ServerOption {
	return func(s *Server) { s.base = append(s.base, opts...) }
}

// WithServerLogger sets the logger for connection and request events.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer returns a Server over hf and mask. It fails when the inputs or
// the default parameters are unusable, so a running server always has a
// default result to hand out.
func NewServer(hf *raster.HeightField, mask *raster.SourceMask, opts ...ServerOption) (*Server, error) {
	s := &Server{
		hf:     hf,
		mask:   mask,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := s.defaultMessage(); err != nil {
		return nil, err
	}

	return s, nil
}

// Handler returns the HTTP routes of the feed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /result", s.serveResult)
	mux.HandleFunc("GET /ws", s.serveWS)

	return mux
}

// Run simulates with p applied over the server's parameters.
func (s *Server) Run(p Params) (*flood.Result, error) {
	opts := append(append([]flood.Option{flood.WithLogger(s.logger)}, s.base...), p.options()...)

	return flood.Simulate(s.hf, s.mask, opts...)
}

func (s *Server) defaultMessage() (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return *s.cached, nil
	}
	res, err := s.Run(Params{})
	if err != nil {
		return Message{}, err
	}
	msg := resultMessage(res)
	s.cached = &msg

	return msg, nil
}

func (s *Server) serveResult(w http.ResponseWriter, r *http.Request) {
	msg, err := s.defaultMessage()
	status := http.StatusOK
	if err != nil {
		msg, status = errorMessage(err), http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		s.logger.Warn("feed: writing result", "remote", r.RemoteAddr, "err", err)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("feed: websocket upgrade", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	log := s.logger.With("remote", r.RemoteAddr)
	log.Info("feed: client connected")

	msg, err := s.defaultMessage()
	if err != nil {
		msg = errorMessage(err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warn("feed: initial push", "err", err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("feed: read", "err", err)
			}
			break
		}
		reply := s.handle(data)
		if reply.Type == TypeError {
			log.Debug("feed: rejected params", "err", reply.Error)
		}
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn("feed: write", "err", err)
			break
		}
	}
	log.Info("feed: client disconnected")
}

// handle answers one inbound Params frame.
func (s *Server) handle(data []byte) Message {
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return errorMessage(errors.Join(errBadParams, err))
	}
	res, err := s.Run(p)
	if err != nil {
		return errorMessage(err)
	}

	return resultMessage(res)
}

var errBadParams = errors.New("feed: malformed params")
