package nodelink

// Palette maps cohort labels to fill colours.
type Palette map[string]string

// UnknownColor fills members whose cohort has no palette entry.
const UnknownColor = "#000000"

// DefaultPalette is the dashboard's cohort palette: one distinct colour per
// pledge class, in chapter order.
var DefaultPalette = Palette{
	"Mu":            "#e6194b",
	"Nu":            "#3cb44b",
	"Xi":            "#ffe119",
	"Omicron":       "#4363d8",
	"Pi":            "#f58231",
	"Rho":           "#911eb4",
	"Sigma":         "#46f0f0",
	"Tau":           "#f032e6",
	"Upsilon":       "#bcf60c",
	"Phi":           "#fabebe",
	"Chi":           "#008080",
	"Psi":           "#e6beff",
	"Alpha Alpha":   "#9a6324",
	"Alpha Beta":    "#fffac8",
	"Alpha Gamma":   "#800000",
	"Alpha Delta":   "#aaffc3",
	"Alpha Epsilon": "#808000",
	"Alpha Zeta":    "#ffd8b1",
	"Unknown":       UnknownColor,
}

// Color returns the fill colour for cohort.
func (p Palette) Color(cohort string) string {
	if c, ok := p[cohort]; ok {
		return c
	}
	return UnknownColor
}
