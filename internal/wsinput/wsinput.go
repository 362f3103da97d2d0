// Package wsinput feeds the bridge with motion samples arriving over
// WebSocket. Each controller connects to /channel/{channel} and streams
// JSON-encoded samples; the newest unconsumed sample per channel is
// handed to the pipeline on the next tick.
package wsinput

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/coder/websocket"

	"github.com/arvela/motion-bridge/internal/motion"
)

// #region server

type channelState struct {
	connected bool
	sample    motion.Sample
	pending   bool
}

// Server accepts motion streams and exposes them as a bridge provider.
type Server struct {
	mu       sync.Mutex
	channels []channelState
}

// NewServer creates a server for the given number of channels.
func NewServer(maxChannels int) *Server {
	if maxChannels <= 0 {
		panic("wsinput: maxChannels must be positive")
	}
	return &Server{channels: make([]channelState, maxChannels)}
}

// Handler returns the HTTP handler serving the motion feed routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/channel/{channel}", s.handleChannel)
	return mux
}

// #endregion server

// #region provider

// Probe reports whether a controller is streaming on the channel.
func (s *Server) Probe(channel int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel < 0 || channel >= len(s.channels) {
		return false
	}
	return s.channels[channel].connected
}

// Read returns the newest sample received since the previous Read.
func (s *Server) Read(channel int) (motion.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel < 0 || channel >= len(s.channels) {
		return motion.Sample{}, false
	}
	st := &s.channels[channel]
	if !st.pending {
		return motion.Sample{}, false
	}
	st.pending = false
	return st.sample, true
}

// #endregion provider

// #region read-loop

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	channel, err := strconv.Atoi(r.PathValue("channel"))
	if err != nil || channel < 0 || channel >= len(s.channels) {
		http.Error(w, "unknown channel", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("wsinput: accept on channel %d: %v", channel, err)
		return
	}

	if !s.attach(channel) {
		_ = conn.Close(websocket.StatusPolicyViolation, "channel busy")
		return
	}
	defer s.detach(channel)
	defer conn.Close(websocket.StatusNormalClosure, "")

	s.readLoop(r.Context(), conn, channel)
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, channel int) {
	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				log.Printf("wsinput: read on channel %d: %v", channel, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}
		var sample motion.Sample
		if err := json.Unmarshal(data, &sample); err != nil {
			log.Printf("wsinput: bad sample on channel %d: %v", channel, err)
			continue
		}
		s.store(channel, sample)
	}
}

func (s *Server) attach(channel int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channels[channel].connected {
		return false
	}
	s.channels[channel].connected = true
	return true
}

func (s *Server) detach(channel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[channel] = channelState{}
}

func (s *Server) store(channel int, sample motion.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.channels[channel]
	st.sample = sample
	st.pending = true
}

// #endregion read-loop
