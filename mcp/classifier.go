package mcp

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the closed set of operations the heuristic classifier maps
// free text onto.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindArithmetic
	KindLinear
	KindQuadratic
)

func (k Kind) String() string {
	switch k {
	case KindArithmetic:
		return "arithmetic"
	case KindLinear:
		return "linear"
	case KindQuadratic:
		return "quadratic"
	default:
		return "unrecognized"
	}
}

// Tool names exposed by the math tools endpoint.
const (
	ToolOperation = "realizar_operacion"
	ToolLinear    = "resolver_ecuacion_lineal"
	ToolQuadratic = "resolver_ecuacion_cuadratica"
)

// Classification is the outcome of classifying a chat message: which
// tool to call and the argument payload to send. Unrecognized input
// produces no tool.
type Classification struct {
	Kind       Kind
	Expression string
	Tool       string
	Arguments  map[string]any
}

var (
	mathChars    = regexp.MustCompile(`[^0-9+\-*/().^xX=² ]`)
	operatorRe   = regexp.MustCompile(`[+\-*/=]`)
	quadraticRe  = regexp.MustCompile(`x\^2|x²`)
	linearVarRe  = regexp.MustCompile(`[xX]`)
	xCoeffRe     = regexp.MustCompile(`(-?\d*\.?\d*)\s*[xX]`)
	constTermRe  = regexp.MustCompile(`(?:^|[+\-])\d+\.?\d*`)
	sqCoeffRe    = regexp.MustCompile(`(-?\d*\.?\d*)\s*(?:x\^2|x²)`)
	linCoeffRe   = regexp.MustCompile(`(-?\d*\.?\d*)\s*[xX](?:[^\^²]|$)`)
	varTermRe    = regexp.MustCompile(`[+\-]?\d*\.?\d*[xX](\^2|²)?`)
)

// Classify maps free text onto a math tool call. It is a best-effort
// heuristic, total over all inputs: malformed text degrades to
// KindUnrecognized instead of failing.
//
// Presence of x^2 (or x²) means a quadratic equation; a free variable
// together with an equality means a linear equation; any remaining
// operator means plain arithmetic. Text with no recognizable operator
// after stripping non-math characters is unrecognized.
func Classify(text string) Classification {
	expr := strings.TrimSpace(mathChars.ReplaceAllString(text, ""))

	if expr == "" || !operatorRe.MatchString(expr) {
		return Classification{Kind: KindUnrecognized}
	}

	switch {
	case quadraticRe.MatchString(expr):
		a, b, c := quadraticCoefficients(expr)
		return Classification{
			Kind:       KindQuadratic,
			Expression: expr,
			Tool:       ToolQuadratic,
			Arguments:  map[string]any{"a": a, "b": b, "c": c},
		}
	case linearVarRe.MatchString(expr) && strings.Contains(expr, "="):
		m, b := linearCoefficients(expr)
		return Classification{
			Kind:       KindLinear,
			Expression: expr,
			Tool:       ToolLinear,
			Arguments:  map[string]any{"m": m, "b": b},
		}
	default:
		return Classification{
			Kind:       KindArithmetic,
			Expression: expr,
			Tool:       ToolOperation,
			Arguments:  map[string]any{"expresion": expr},
		}
	}
}

// linearCoefficients extracts m and b from an equation of the shape
// "mx + b = c", normalized to m*x + b = 0. Unparseable parts fall back
// to neutral values; the solver reports its own errors for nonsense.
func linearCoefficients(expr string) (float64, float64) {
	compact := strings.ReplaceAll(expr, " ", "")

	left, right, found := strings.Cut(compact, "=")
	if !found {
		left, right = compact, "0"
	}

	m := 1.0
	if match := xCoeffRe.FindStringSubmatch(left); match != nil {
		m = parseCoefficient(match[1], 1)
	}

	b := sumConstants(stripVariableTerms(left)) - sumConstants(stripVariableTerms(right))
	return m, b
}

// quadraticCoefficients extracts a, b and c from "ax^2 + bx + c = d",
// normalized so the right side is zero.
func quadraticCoefficients(expr string) (float64, float64, float64) {
	compact := strings.ReplaceAll(expr, " ", "")
	compact = strings.ReplaceAll(compact, "²", "^2")

	left, right, found := strings.Cut(compact, "=")
	if !found {
		left, right = compact, "0"
	}

	a := 0.0
	if match := sqCoeffRe.FindStringSubmatch(left); match != nil {
		a = parseCoefficient(match[1], 1)
	}

	b := 0.0
	withoutSquare := sqCoeffRe.ReplaceAllString(left, "")
	if match := linCoeffRe.FindStringSubmatch(withoutSquare); match != nil {
		b = parseCoefficient(match[1], 1)
	}

	c := sumConstants(stripVariableTerms(left)) - sumConstants(stripVariableTerms(right))
	return a, b, c
}

// stripVariableTerms removes every term containing the variable so
// only bare constants remain.
func stripVariableTerms(side string) string {
	return varTermRe.ReplaceAllString(side, "")
}

func sumConstants(side string) float64 {
	sum := 0.0
	for _, term := range constTermRe.FindAllString(side, -1) {
		if v, err := strconv.ParseFloat(term, 64); err == nil {
			sum += v
		}
	}
	return sum
}

func parseCoefficient(raw string, fallback float64) float64 {
	switch raw {
	case "", "+":
		return fallback
	case "-":
		return -fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
