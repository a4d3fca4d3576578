package style

import "github.com/riftlens/riftlens/internal/domain/model"

// Tier thresholds shared by the five global axes.
const (
	tierTendency = 0.55
	tierCore     = 0.70
	tierExtreme  = 0.85

	// Minimum sample before any axis tag is awarded.
	axisMinGames = 10
)

// DimWeights weighs the style dimensions for one tag predicate. Control is
// a virtual dimension computed as 1-risk, so low-risk tendencies can be
// expressed with positive weights.
type DimWeights struct {
	Early    float64
	Late     float64
	Vision   float64
	Pressure float64
	Risk     float64
	Control  float64
}

// TagDefinition is one entry of the fixed tag catalog. A tag is awarded
// when the weighted profile score reaches Threshold, the window holds at
// least MinGames matches, and (when RiskMax > 0) the profile risk stays at
// or below RiskMax. Tags are not mutually exclusive.
type TagDefinition struct {
	ID        string
	Label     string
	Color     string
	MinGames  int
	Threshold float64
	RiskMax   float64
	Weights   DimWeights
}

func (d TagDefinition) score(p model.StyleVector) float64 {
	w := d.Weights
	return w.Early*p.Early +
		w.Late*p.Late +
		w.Vision*p.Vision +
		w.Pressure*p.Pressure +
		w.Risk*p.Risk +
		w.Control*(1-p.Risk)
}

// Catalog returns the built-in tag catalog. Order is significant: tags are
// evaluated and emitted in this order, which keeps snapshots byte-stable
// across recomputations of the same window.
func Catalog() []TagDefinition {
	earlyAxis := DimWeights{Early: 0.7, Pressure: 0.3}
	lateAxis := DimWeights{Late: 0.8, Control: 0.2}
	visionAxis := DimWeights{Vision: 0.8, Pressure: 0.2}
	pressureAxis := DimWeights{Pressure: 0.7, Early: 0.3}
	controlAxis := DimWeights{Control: 0.8, Vision: 0.2}

	return []TagDefinition{
		// Early-game axis.
		{ID: "EARLY_PRESSURE_EXTREME", Label: "Relentless early aggressor", Color: "#ff7043", MinGames: axisMinGames, Threshold: tierExtreme, Weights: earlyAxis},
		{ID: "EARLY_PRESSURE_CORE", Label: "Early-game playmaker", Color: "#ffa726", MinGames: axisMinGames, Threshold: tierCore, Weights: earlyAxis},
		{ID: "EARLY_PRESSURE_TENDENCY", Label: "Leans on early pressure", Color: "#ffcc80", MinGames: axisMinGames, Threshold: tierTendency, Weights: earlyAxis},

		// Late-game axis.
		{ID: "LATE_SCALER_EXTREME", Label: "Hyper-scaling carry", Color: "#ffca28", MinGames: axisMinGames, Threshold: tierExtreme, Weights: lateAxis},
		{ID: "LATE_SCALER_CORE", Label: "Late-game carry", Color: "#ffd54f", MinGames: axisMinGames, Threshold: tierCore, Weights: lateAxis},
		{ID: "LATE_SCALER_TENDENCY", Label: "Leans on scaling", Color: "#ffe082", MinGames: axisMinGames, Threshold: tierTendency, Weights: lateAxis},

		// Vision/objective axis.
		{ID: "VISION_COMMANDER", Label: "Vision commander", Color: "#5c6bc0", MinGames: axisMinGames, Threshold: tierExtreme, Weights: visionAxis},
		{ID: "VISION_CONTROL_CORE", Label: "Vision-control player", Color: "#7986cb", MinGames: axisMinGames, Threshold: tierCore, Weights: visionAxis},
		{ID: "VISION_TENDENCY", Label: "Vision-minded", Color: "#9fa8da", MinGames: axisMinGames, Threshold: tierTendency, Weights: visionAxis},

		// Map-pressure axis.
		{ID: "MAP_PRESSURE_EXTREME", Label: "Global playmaker", Color: "#ab47bc", MinGames: axisMinGames, Threshold: tierExtreme, Weights: pressureAxis},
		{ID: "MAP_PRESSURE_CORE", Label: "Map-pressure player", Color: "#ba68c8", MinGames: axisMinGames, Threshold: tierCore, Weights: pressureAxis},
		{ID: "MAP_PRESSURE_TENDENCY", Label: "Roam-inclined", Color: "#ce93d8", MinGames: axisMinGames, Threshold: tierTendency, Weights: pressureAxis},

		// Risk-control axis.
		{ID: "DISCIPLINED_EXTREME", Label: "Ice-cold decision maker", Color: "#26a69a", MinGames: axisMinGames, Threshold: tierExtreme, Weights: controlAxis},
		{ID: "DISCIPLINED_CORE", Label: "Disciplined player", Color: "#4db6ac", MinGames: axisMinGames, Threshold: tierCore, Weights: controlAxis},
		{ID: "DISCIPLINED_TENDENCY", Label: "Plays it safe", Color: "#80cbc4", MinGames: axisMinGames, Threshold: tierTendency, Weights: controlAxis},

		// Cross-axis flavor tags.
		{ID: "ALL_IN_SKIRMISHER", Label: "All-in skirmisher", Color: "#ef5350", MinGames: axisMinGames, Threshold: tierCore,
			Weights: DimWeights{Early: 0.4, Pressure: 0.3, Risk: 0.3}},
		{ID: "SAFE_SCALER", Label: "Safe scaling farmer", Color: "#81c784", MinGames: axisMinGames, Threshold: 0.65, RiskMax: 0.35,
			Weights: DimWeights{Late: 0.5, Control: 0.5}},
		{ID: "COIN_FLIPPER", Label: "High-variance gambler", Color: "#e57373", MinGames: axisMinGames, Threshold: 0.60,
			Weights: DimWeights{Risk: 1.0}},
	}
}
