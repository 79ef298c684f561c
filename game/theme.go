package game

// Theme holds all visual styling constants for easy customization.
var Theme = struct {
	// Background colors
	BackgroundColor     string
	BackgroundLineColor string
	BackgroundGlow      string
	LaneLineColor       string

	// Runner colors
	RunnerColor       string
	RunnerGlow        string
	RunnerCenterColor string

	// Pillar colors
	PillarColor     string
	PillarGlow      string
	PillarLineColor string

	// Finish gate colors
	FinishColor string
	FinishGlow  string

	// HUD colors
	HUDTextColor    string
	HUDGlow         string
	PitchMeterColor string
	ForceMeterColor string
	MeterBackground string
	MeterBorder     string

	// Overlay text colors
	TextPrimaryColor   string
	TextSecondaryColor string
	TextGlow           string
	TextScanlineColor  string

	// Fonts
	HUDFont      string
	TextFont     string
	InstructFont string

	// Line widths
	RunnerLineWidth float64
	PillarLineWidth float64
	LaneLineWidth   float64
	MeterLineWidth  float64

	// Shadow/glow blur values
	DefaultShadowBlur float64
	RunnerShadowBlur  float64
	PillarShadowBlur  float64
}{
	// Background colors - dark stage theme
	BackgroundColor:     "#000",
	BackgroundLineColor: "#111",
	BackgroundGlow:      "#444",
	LaneLineColor:       "#123",

	// Runner colors - green/lime theme
	RunnerColor:       "#9F0",
	RunnerGlow:        "#9F0",
	RunnerCenterColor: "#FFF",

	// Pillar colors - purple/violet
	PillarColor:     "#62F",
	PillarGlow:      "#62F",
	PillarLineColor: "#93F",

	// Finish gate colors - yellow-green
	FinishColor: "#CF0",
	FinishGlow:  "#CF0",

	// HUD colors
	HUDTextColor:    "#9F0",
	HUDGlow:         "#9F0",
	PitchMeterColor: "#0CF",
	ForceMeterColor: "#F63",
	MeterBackground: "#000",
	MeterBorder:     "#FFF",

	// Overlay text colors
	TextPrimaryColor:   "#62F",
	TextSecondaryColor: "#FFF",
	TextGlow:           "#FFF",
	TextScanlineColor:  "#62F",

	// Fonts
	HUDFont:      "Consolas,monospace",
	TextFont:     "Consolas,monospace",
	InstructFont: "16px sans-serif",

	// Line widths
	RunnerLineWidth: 3.0,
	PillarLineWidth: 3.0,
	LaneLineWidth:   1.0,
	MeterLineWidth:  0.5,

	// Shadow/glow blur values
	DefaultShadowBlur: 6.0,
	RunnerShadowBlur:  6.0,
	PillarShadowBlur:  6.0,
}
