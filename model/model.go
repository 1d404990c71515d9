// Package model holds the wire types exchanged with the dashboard
// front-end. The hub decodes a Msg envelope, dispatches on Type and decodes
// Content into the matching request payload.
package model

// Msg is the envelope of every front-end exchange.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// EvaporationRequest carries the inputs of a train solve.
type EvaporationRequest struct {
	FeedFlow       float64 `json:"feed_flow_kg_h"`
	FeedFraction   float64 `json:"x_feed"`
	TargetFraction float64 `json:"x_out"`
	Effects        int     `json:"effects"`
	SteamPressure  float64 `json:"p_steam_bar"`
	FinalPressure  float64 `json:"p_final_bar"`
	FeedTemp       float64 `json:"t_feed_c"`
}

// CrystallizationRequest carries the inputs of a batch run.
type CrystallizationRequest struct {
	Mass          float64 `json:"mass_kg"`
	Concentration float64 `json:"c_init_g100g"`
	InitialTemp   float64 `json:"t_init_c"`
	Duration      float64 `json:"duration_s"`
	TimeStep      float64 `json:"dt_s"`
	Profile       string  `json:"profile"`
}

// EffectStudyRequest carries the inputs of the effect-count study.
type EffectStudyRequest struct {
	EvaporationRequest
	MaxEffects int `json:"max_effects"`
}
