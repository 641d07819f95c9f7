package matrix

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Method is a comparison statistic.
type Method string

const (
	Pearson         Method = "pearson"
	Spearman        Method = "spearman"
	MAE             Method = "mae"
	Cosine          Method = "cosine"
	WeightedJaccard Method = "weighted_jaccard"
	Euclid          Method = "euclid"
)

// Methods lists all comparison methods.
var Methods = []Method{Pearson, Spearman, MAE, Cosine, WeightedJaccard, Euclid}

// NewMethod converts a command-line value. The value "all" is not
// handled here.
func NewMethod(s string) (Method, error) {
	m := Method(s)
	if !slices.Contains(Methods, m) {
		return "", MethodError(s)
	}
	return m, nil
}

// Result is a value of one comparison method.
type Result struct {
	Method Method
	Value  float64
}

// Compare computes statistics between lower triangles of two matrices
// restricted to names they share. Common names follow the order of a.
func Compare(a, b *Matrix, methods []Method) ([]Result, error) {
	var common []string
	for _, v := range a.names {
		if _, ok := b.index[v]; ok {
			common = append(common, v)
		}
	}
	if len(common) < 2 {
		return nil, DimensionError(
			"Matrices share <em>%d</em> names, at least 2 are needed", len(common))
	}

	sa, _, err := a.Subset(common)
	if err != nil {
		return nil, err
	}
	sb, _, err := b.Subset(common)
	if err != nil {
		return nil, err
	}
	x, y := sa.LowerTriangle(), sb.LowerTriangle()

	res := make([]Result, 0, len(methods))
	for _, m := range methods {
		var v float64
		switch m {
		case Pearson:
			v = stat.Correlation(x, y, nil)
		case Spearman:
			v = stat.Correlation(ranks(x), ranks(y), nil)
		case MAE:
			v = meanAbsError(x, y)
		case Cosine:
			v = floats.Dot(x, y) / (floats.Norm(x, 2) * floats.Norm(y, 2))
		case WeightedJaccard:
			v = weightedJaccard(x, y)
		case Euclid:
			v = floats.Distance(x, y, 2)
		default:
			return nil, MethodError(string(m))
		}
		res = append(res, Result{Method: m, Value: v})
	}
	return res, nil
}

// ranks returns 1-based ranks, ties are ranked by position.
func ranks(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(x[a], x[b])
	})
	res := make([]float64, len(x))
	for r, i := range idx {
		res[i] = float64(r + 1)
	}
	return res
}

func meanAbsError(x, y []float64) float64 {
	var sum float64
	for i := range x {
		sum += math.Abs(x[i] - y[i])
	}
	return sum / float64(len(x))
}

func weightedJaccard(x, y []float64) float64 {
	var num, den float64
	for i := range x {
		num += math.Min(x[i], y[i])
		den += math.Max(x[i], y[i])
	}
	if den == 0 {
		return 0
	}
	return num / den
}
