package thermo

import "math"

// Saturated-water property table, liquid/vapor equilibrium from 10 to 180 °C
// (0.012 to 10 bar, covering vacuum effects up to high-pressure motive steam).
// Columns: temperature (°C), saturation pressure (bar abs), latent heat of
// vaporization (kJ/kg), liquid specific heat (kJ/kg/K).
// Source: standard saturated steam tables (Perry's Handbook).
var steamTable = []struct {
	TempC    float64
	PsatBar  float64
	LatentKJ float64
	CpLiquid float64
}{
	{10, 0.01228, 2477.2, 4.195},
	{20, 0.02339, 2453.5, 4.182},
	{30, 0.04246, 2430.0, 4.178},
	{40, 0.07384, 2406.5, 4.179},
	{50, 0.12351, 2382.6, 4.181},
	{60, 0.19946, 2358.4, 4.185},
	{70, 0.31201, 2333.8, 4.190},
	{80, 0.47414, 2308.7, 4.197},
	{90, 0.70182, 2283.0, 4.205},
	{100, 1.01420, 2256.4, 4.216},
	{110, 1.43380, 2229.6, 4.229},
	{120, 1.98670, 2202.1, 4.245},
	{130, 2.70280, 2173.7, 4.263},
	{140, 3.61540, 2144.2, 4.285},
	{150, 4.76160, 2113.7, 4.310},
	{160, 6.18230, 2082.0, 4.340},
	{170, 7.92190, 2049.6, 4.369},
	{180, 10.0280, 2014.6, 4.408},
}

// linearInterp interpolates y(x) between two known points.
func linearInterp(x, x0, y0, x1, y1 float64) float64 {
	if x0 == x1 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// tableTsat inverts the table: saturation temperature for a pressure in bar.
// Interpolation runs on ln(P), which is close to linear in T for water.
// Returns false when the pressure falls outside the tabulated range.
func tableTsat(pBar float64) (float64, bool) {
	n := len(steamTable)
	if pBar < steamTable[0].PsatBar || pBar > steamTable[n-1].PsatBar {
		return 0, false
	}
	lnP := math.Log(pBar)
	for i := 0; i < n-1; i++ {
		p0, p1 := steamTable[i].PsatBar, steamTable[i+1].PsatBar
		if pBar >= p0 && pBar <= p1 {
			return linearInterp(lnP, math.Log(p0), steamTable[i].TempC, math.Log(p1), steamTable[i+1].TempC), true
		}
	}
	return steamTable[n-1].TempC, true
}

// tableLatent returns the latent heat (kJ/kg) at a temperature in °C.
func tableLatent(tC float64) (float64, bool) {
	return tableColumn(tC, func(i int) float64 { return steamTable[i].LatentKJ })
}

// tableCpWater returns the saturated-liquid specific heat (kJ/kg/K) at T °C.
func tableCpWater(tC float64) (float64, bool) {
	return tableColumn(tC, func(i int) float64 { return steamTable[i].CpLiquid })
}

func tableColumn(tC float64, col func(i int) float64) (float64, bool) {
	n := len(steamTable)
	if tC < steamTable[0].TempC || tC > steamTable[n-1].TempC {
		return 0, false
	}
	for i := 0; i < n-1; i++ {
		t0, t1 := steamTable[i].TempC, steamTable[i+1].TempC
		if tC >= t0 && tC <= t1 {
			return linearInterp(tC, t0, col(i), t1, col(i+1)), true
		}
	}
	return col(n - 1), true
}
