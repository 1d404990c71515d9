package evaporator

// Status qualifies how a solve finished.
type Status string

const (
	StatusOK           Status = "ok"
	StatusNotConverged Status = "not-converged"
	StatusDegraded     Status = "degraded"
)

// EffectResult is the frozen state of one effect after the solve.
type EffectResult struct {
	Index       int     `json:"effect"`
	Liquid      float64 `json:"l_kg_h"`
	Vapor       float64 `json:"v_kg_h"`
	FractionPct float64 `json:"x_pct"`
	Temperature float64 `json:"t_c"`
	Pressure    float64 `json:"p_bar"`
	Area        float64 `json:"a_m2"`
	Duty        float64 `json:"q_kw"`
	U           float64 `json:"u_w_m2k"`
}

// Result is the read-only snapshot returned by Solve. A non-converged or
// degraded result is still usable as an engineering estimate; Status and
// Warnings say how much to trust it.
type Result struct {
	Effects []EffectResult `json:"effects"`

	TotalArea  float64 `json:"a_total_m2"`
	SteamFlow  float64 `json:"m_steam_kg_h"`
	Economy    float64 `json:"economy"`
	TotalVapor float64 `json:"v_total_kg_h"`
	Product    float64 `json:"p_kg_h"`

	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Status     Status   `json:"status"`
	Warnings   []string `json:"warnings,omitempty"`
}
