// Package server exposes the solvers to the dashboard front-end over a
// websocket endpoint. Each connection gets its own hub; the hub only calls
// the documented solver entry points.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/config"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/model"
)

type Server struct {
	addr     string
	cfg      config.Config
	upgrader websocket.Upgrader
}

func NewServer(addr string, cfg config.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     addr,
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("err", err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	hub := NewHub(s.cfg, conn)
	go hub.handleRequest()
	go hub.handleResponse()
	defer hub.close()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithField("err", err).Info("connection closed")
			return
		}
		hub.msg <- msg
	}
}

func (s *Server) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveWs(w, r)
	})
	log.WithField("addr", s.addr).Info("dashboard endpoint listening")
	return http.ListenAndServe(s.addr, mux)
}
