package analytics

import (
	"fmt"
	"math"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
)

// pairAcc accumulates the running sums a Pearson coefficient needs,
// so one pass over the records covers every column pair.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (a *pairAcc) add(x, y float64) {
	a.n++
	a.sumX += x
	a.sumY += y
	a.sumXX += x * x
	a.sumYY += y * y
	a.sumXY += x * y
}

func (a *pairAcc) pearson() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	varX := a.n*a.sumXX - a.sumX*a.sumX
	varY := a.n*a.sumYY - a.sumY*a.sumY
	if varX <= 0 || varY <= 0 {
		return math.NaN()
	}
	r := (a.n*a.sumXY - a.sumX*a.sumY) / math.Sqrt(varX*varY)
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}

// Correlate computes the pairwise Pearson matrix over the named
// measure columns, all five when none are given. The matrix is
// symmetric with 1.0 on the diagonal; cells are NaN when either series
// has zero variance, so an empty selection yields an all-NaN matrix
// rather than an error.
func Correlate(
	records []domain.CleanRecord,
	columns []string,
	filter domain.Filter,
) (*domain.CorrelationMatrix, error) {
	if len(columns) == 0 {
		columns = domain.MeasureColumns()
	}
	for _, c := range columns {
		if _, ok := (domain.CleanRecord{}).Measure(c); !ok {
			return nil, fmt.Errorf("unknown measure column: %s", c)
		}
	}

	k := len(columns)
	accs := make([][]pairAcc, k)
	for i := range accs {
		accs[i] = make([]pairAcc, k)
	}

	for _, r := range records {
		if !filter.Match(r) {
			continue
		}
		for i := 0; i < k; i++ {
			x, _ := r.Measure(columns[i])
			for j := i; j < k; j++ {
				y, _ := r.Measure(columns[j])
				accs[i][j].add(x, y)
			}
		}
	}

	values := make([][]float64, k)
	for i := range values {
		values[i] = make([]float64, k)
	}
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			a := &accs[i][j]
			r := a.pearson()
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &domain.CorrelationMatrix{
		Columns: append([]string{}, columns...),
		Values:  values,
	}, nil
}
