package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/analysis"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/config"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/crystallizer"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/model"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

// Request message types and their reply counterparts.
const (
	TypeEvaporate   = "evaporate"
	TypeCrystallize = "crystallize"
	TypeProfiles    = "profiles"
	TypeEffects     = "effects"
)

// Hub serializes the exchanges of one connection: requests come in on msg,
// replies leave on reply. One solver call runs at a time per connection.
type Hub struct {
	cfg  config.Config
	prov *thermo.Provider
	conn *websocket.Conn

	msg   chan model.Msg
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(cfg config.Config, conn *websocket.Conn) *Hub {
	return &Hub{
		cfg:   cfg,
		prov:  thermo.NewProvider(cfg.Thermo.PreciseBackend),
		conn:  conn,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) close() {
	close(h.done)
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithField("err", err).Error("write failed")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			h.reply <- h.dispatch(msg)
		case <-h.done:
			return
		}
	}
}

// dispatch maps one request to one solver call and packs the result (or the
// error) back into a Msg.
func (h *Hub) dispatch(msg model.Msg) model.Msg {
	var payload any
	var err error

	switch msg.Type {
	case TypeEvaporate:
		var req model.EvaporationRequest
		if err = json.Unmarshal([]byte(msg.Content), &req); err == nil {
			payload, err = evaporator.Solve(h.trainConfig(req), h.prov)
		}
	case TypeCrystallize:
		var req model.CrystallizationRequest
		if err = json.Unmarshal([]byte(msg.Content), &req); err == nil {
			payload, err = crystallizer.Run(h.batchConfig(req))
		}
	case TypeProfiles:
		var req model.CrystallizationRequest
		if err = json.Unmarshal([]byte(msg.Content), &req); err == nil {
			payload, err = analysis.CompareProfiles(h.batchConfig(req))
		}
	case TypeEffects:
		var req model.EffectStudyRequest
		if err = json.Unmarshal([]byte(msg.Content), &req); err == nil {
			if req.MaxEffects < 2 {
				req.MaxEffects = 5
			}
			payload = analysis.EffectCountStudy(h.trainConfig(req.EvaporationRequest), h.prov, req.MaxEffects)
		}
	default:
		err = fmt.Errorf("no such request type %q", msg.Type)
	}

	if err != nil {
		log.WithFields(log.Fields{"type": msg.Type, "err": err}).Warn("request failed")
		return model.Msg{Type: "error", Content: err.Error()}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return model.Msg{Type: "error", Content: err.Error()}
	}
	return model.Msg{Type: msg.Type + "-result", Content: string(data)}
}

func (h *Hub) trainConfig(req model.EvaporationRequest) evaporator.Config {
	return evaporator.Config{
		FeedFlow:          req.FeedFlow,
		FeedFraction:      req.FeedFraction,
		TargetFraction:    req.TargetFraction,
		Effects:           req.Effects,
		SteamPressure:     req.SteamPressure,
		FinalPressure:     req.FinalPressure,
		FeedTemp:          req.FeedTemp,
		HeatLossFraction:  h.cfg.Evaporator.HeatLossFraction,
		FoulingResistance: h.cfg.Evaporator.FoulingResistance,
		MaxIterations:     h.cfg.Evaporator.MaxIterations,
		Tolerance:         h.cfg.Evaporator.Tolerance,
	}
}

func (h *Hub) batchConfig(req model.CrystallizationRequest) crystallizer.Config {
	return crystallizer.Config{
		Mass:          req.Mass,
		Concentration: req.Concentration,
		InitialTemp:   req.InitialTemp,
		Duration:      req.Duration,
		TimeStep:      req.TimeStep,
		Profile:       req.Profile,
		GridPoints:    h.cfg.Crystallizer.GridPoints,
		MaxSize:       h.cfg.Crystallizer.MaxSize,
	}
}
