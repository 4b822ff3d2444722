package optimization

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// ModerateMinVarianceWeight and ModerateMaxSharpeWeight define the moderate
// profile's blend of the two boundary strategies. The 0.6/0.4 split is a
// product policy choice, not a derived optimum.
const (
	ModerateMinVarianceWeight = 0.6
	ModerateMaxSharpeWeight   = 0.4
)

// MVBackend performs mean-variance portfolio optimization.
//
// Mathematical formulation per profile:
//   - conservative: minimize w'Σw
//   - aggressive:   maximize (μ'w - r_f) / sqrt(w'Σw)
//   - moderate:     0.6 × min-variance weights + 0.4 × max-Sharpe weights,
//     renormalized to sum to 1
//
// Constraints: Σw = 1 (penalty method) and 0 ≤ w_i ≤ 1 (projection).
type MVBackend struct {
	riskFreeRate float64
}

// NewMVBackend creates a mean-variance backend.
func NewMVBackend(riskFreeRate float64) *MVBackend {
	return &MVBackend{riskFreeRate: riskFreeRate}
}

// Optimize solves for target weights per the request's risk profile.
func (b *MVBackend) Optimize(req Request) (domain.Allocation, error) {
	n := len(req.Symbols)
	if n == 0 {
		return nil, fmt.Errorf("no symbols provided")
	}
	if len(req.Covariance) != n {
		return nil, fmt.Errorf("covariance matrix size %d doesn't match symbol count %d", len(req.Covariance), n)
	}
	for i := range req.Covariance {
		if len(req.Covariance[i]) != n {
			return nil, fmt.Errorf("covariance matrix row %d has size %d, expected %d", i, len(req.Covariance[i]), n)
		}
	}

	mu := make([]float64, n)
	for i, symbol := range req.Symbols {
		ret, ok := req.ExpectedReturns[symbol]
		if !ok {
			return nil, fmt.Errorf("missing expected return for %s", symbol)
		}
		if math.IsNaN(ret) || math.IsInf(ret, 0) {
			return nil, fmt.Errorf("expected return for %s is not finite", symbol)
		}
		mu[i] = ret
	}

	sigma := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := req.Covariance[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("covariance[%d][%d] is not finite", i, j)
			}
			sigma.Set(i, j, v)
		}
	}

	switch req.Profile {
	case domain.RiskConservative:
		x, err := b.solveMinVariance(sigma, n)
		if err != nil {
			return nil, err
		}
		return toAllocation(req.Symbols, x), nil

	case domain.RiskAggressive:
		x, err := b.solveMaxSharpe(mu, sigma, n)
		if err != nil {
			return nil, err
		}
		return toAllocation(req.Symbols, x), nil

	case domain.RiskModerate:
		minVar, err := b.solveMinVariance(sigma, n)
		if err != nil {
			return nil, err
		}
		maxSharpe, err := b.solveMaxSharpe(mu, sigma, n)
		if err != nil {
			return nil, err
		}
		blended := make([]float64, n)
		for i := range blended {
			blended[i] = ModerateMinVarianceWeight*minVar[i] + ModerateMaxSharpeWeight*maxSharpe[i]
		}
		return toAllocation(req.Symbols, blended), nil

	default:
		return nil, fmt.Errorf("unknown risk profile: %s", req.Profile)
	}
}

// solveMinVariance minimizes w'Σw.
func (b *MVBackend) solveMinVariance(sigma *mat.Dense, n int) ([]float64, error) {
	const penaltyWeight = 1000.0

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			xProj := projectToUnitBounds(x)

			var variance float64
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					variance += xProj[i] * xProj[j] * sigma.At(i, j)
				}
			}

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += xProj[i]
			}

			return variance + penaltyWeight*(sum-1.0)*(sum-1.0)
		},
		Grad: func(grad, x []float64) {
			xProj := projectToUnitBounds(x)

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += xProj[i]
			}

			for i := 0; i < n; i++ {
				grad[i] = 0
				for j := 0; j < n; j++ {
					grad[i] += 2 * sigma.At(i, j) * xProj[j]
				}
				grad[i] += 2 * penaltyWeight * (sum - 1.0)
			}
		},
	}

	return solve(problem, n)
}

// solveMaxSharpe maximizes (μ'w - r_f) / sqrt(w'Σw).
func (b *MVBackend) solveMaxSharpe(mu []float64, sigma *mat.Dense, n int) ([]float64, error) {
	const penaltyWeight = 1000.0
	rf := b.riskFreeRate

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			xProj := projectToUnitBounds(x)

			var returnVal, variance float64
			for i := 0; i < n; i++ {
				returnVal += mu[i] * xProj[i]
				for j := 0; j < n; j++ {
					variance += xProj[i] * xProj[j] * sigma.At(i, j)
				}
			}
			stdDev := math.Sqrt(math.Max(variance, 1e-10))

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += xProj[i]
			}

			obj := -(returnVal - rf) / stdDev
			obj += penaltyWeight * (sum - 1.0) * (sum - 1.0)
			return obj
		},
		Grad: func(grad, x []float64) {
			xProj := projectToUnitBounds(x)

			var returnVal, variance float64
			for i := 0; i < n; i++ {
				returnVal += mu[i] * xProj[i]
				for j := 0; j < n; j++ {
					variance += xProj[i] * xProj[j] * sigma.At(i, j)
				}
			}
			stdDev := math.Sqrt(math.Max(variance, 1e-10))
			excess := returnVal - rf

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += xProj[i]
			}

			for i := 0; i < n; i++ {
				var dVariance float64
				for j := 0; j < n; j++ {
					dVariance += 2 * sigma.At(i, j) * xProj[j]
				}
				grad[i] = -mu[i]/stdDev + excess*dVariance/(2*stdDev*stdDev*stdDev)
				grad[i] += 2 * penaltyWeight * (sum - 1.0)
			}
		},
	}

	return solve(problem, n)
}

// solve runs BFGS from the equal-weight starting point, retrying with
// NelderMead when BFGS fails, then projects and renormalizes the solution.
func solve(problem optimize.Problem, n int) ([]float64, error) {
	initial := make([]float64, n)
	for i := range initial {
		initial[i] = 1.0 / float64(n)
	}

	result, err := optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.BFGS{})
	if err != nil || !converged(result.Status) {
		result, err = optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.NelderMead{})
		if err != nil {
			return nil, fmt.Errorf("optimization failed: %w", err)
		}
		if !converged(result.Status) {
			return nil, fmt.Errorf("optimization did not converge: status=%v", result.Status)
		}
	}

	xFinal := projectToUnitBounds(result.X)
	sum := 0.0
	for _, w := range xFinal {
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("optimization produced non-positive weight sum")
	}
	for i := range xFinal {
		xFinal[i] /= sum
	}
	return xFinal, nil
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence:
		return true
	default:
		return false
	}
}

// projectToUnitBounds clamps weights into [0, 1].
func projectToUnitBounds(x []float64) []float64 {
	proj := make([]float64, len(x))
	for i := range x {
		proj[i] = math.Max(0.0, math.Min(1.0, x[i]))
	}
	return proj
}

// toAllocation renormalizes a weight vector into an Allocation summing to 1.
func toAllocation(symbols []string, x []float64) domain.Allocation {
	sum := 0.0
	for _, w := range x {
		sum += math.Max(0, w)
	}
	weights := make(domain.Allocation, len(symbols))
	for i, symbol := range symbols {
		w := math.Max(0, x[i])
		if sum > 0 {
			w /= sum
		}
		weights[symbol] = w
	}
	return weights
}
