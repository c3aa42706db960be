package constants

import "strings"

// NotIdentified is the sentinel stored for every extracted field the vision
// model could not read off the packaging.
const NotIdentified = "N/I"

// Molding is the manufacturing technique of the plastic piece.
type Molding string

const (
	MoldingThermoformed Molding = "TERMOFORMADO"
	MoldingInjected     Molding = "INJETADO"
)

// DefaultMolding is assumed when the model omits or garbles the field.
const DefaultMolding = MoldingThermoformed

var allMoldings = []Molding{MoldingThermoformed, MoldingInjected}

// Shape is the footprint of the package.
type Shape string

const (
	ShapeRound       Shape = "REDONDO"
	ShapeRectangular Shape = "RETANGULAR"
	ShapeSquare      Shape = "QUADRADO"
	ShapeOval        Shape = "OVAL"
)

// DefaultShape is assumed when the model omits or garbles the field.
const DefaultShape = ShapeRound

var allShapes = []Shape{ShapeRound, ShapeRectangular, ShapeSquare, ShapeOval}

// DefaultPackageType is the fallback for tipoEmbalagem.
const DefaultPackageType = "POTE"

// KnownManufacturers are logo hints passed to the vision model; these marks
// are commonly embossed on the bottom of the plastic piece.
var KnownManufacturers = []string{
	"FIBRASA", "BOMIX", "REAL PLASTIC", "JAGUAR", "IDM",
	"AMCOR", "RIOPLASTIC", "BARRIPACK", "UP&IB", "METAL G",
}

// CanonicalMolding uppercases the input and maps it onto the molding
// vocabulary. Unknown or empty input degrades to DefaultMolding.
func CanonicalMolding(input string) (Molding, bool) {
	normalized := Molding(strings.ToUpper(strings.TrimSpace(input)))
	for _, m := range allMoldings {
		if normalized == m {
			return m, true
		}
	}
	return DefaultMolding, false
}

// CanonicalShape uppercases the input and maps it onto the shape vocabulary.
// Unknown or empty input degrades to DefaultShape.
func CanonicalShape(input string) (Shape, bool) {
	normalized := Shape(strings.ToUpper(strings.TrimSpace(input)))
	for _, s := range allShapes {
		if normalized == s {
			return s, true
		}
	}
	return DefaultShape, false
}

func MoldingValues() []string {
	out := make([]string, len(allMoldings))
	for i, m := range allMoldings {
		out[i] = string(m)
	}
	return out
}

func ShapeValues() []string {
	out := make([]string, len(allShapes))
	for i, s := range allShapes {
		out[i] = string(s)
	}
	return out
}
