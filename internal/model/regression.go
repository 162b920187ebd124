package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// designMatrix builds the regression design matrix with a leading
// intercept column.
func designMatrix(rows [][]float64) *mat.Dense {
	n := len(rows)
	cols := len(rows[0]) + 1
	a := mat.NewDense(n, cols, nil)
	for i, row := range rows {
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}
	return a
}

// fitLeastSquares solves the ordinary least-squares fit via QR.
func fitLeastSquares(rows [][]float64, labels []float64) ([]float64, error) {
	if len(rows) == 0 || len(rows) != len(labels) {
		return nil, fmt.Errorf("bad training shape: %d rows, %d labels", len(rows), len(labels))
	}
	a := designMatrix(rows)
	b := mat.NewVecDense(len(labels), labels)

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}
	return vecSlice(&w), nil
}

// fitRidge solves the L2-regularized normal equations
// (AᵀA + λI) w = Aᵀy, leaving the intercept unpenalized.
func fitRidge(rows [][]float64, labels []float64, lambda float64) ([]float64, error) {
	if len(rows) == 0 || len(rows) != len(labels) {
		return nil, fmt.Errorf("bad training shape: %d rows, %d labels", len(rows), len(labels))
	}
	a := designMatrix(rows)
	b := mat.NewVecDense(len(labels), labels)

	var ata mat.Dense
	ata.Mul(a.T(), a)
	cols := len(rows[0]) + 1
	for j := 1; j < cols; j++ {
		ata.Set(j, j, ata.At(j, j)+lambda)
	}

	var atb mat.VecDense
	atb.MulVec(a.T(), b)

	var w mat.VecDense
	if err := w.SolveVec(&ata, &atb); err != nil {
		return nil, fmt.Errorf("ridge solve: %w", err)
	}
	return vecSlice(&w), nil
}

// predict applies fitted weights (intercept first) to a feature vector.
func predict(weights, features []float64) float64 {
	out := weights[0]
	for i, v := range features {
		out += weights[i+1] * v
	}
	return out
}

// evaluate computes test-set R² and mean absolute error.
func evaluate(weights []float64, rows [][]float64, labels []float64) (r2, mae float64) {
	n := len(rows)
	if n == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, y := range labels {
		mean += y
	}
	mean /= float64(n)

	ssRes, ssTot, absSum := 0.0, 0.0, 0.0
	for i, row := range rows {
		pred := predict(weights, row)
		d := labels[i] - pred
		ssRes += d * d
		t := labels[i] - mean
		ssTot += t * t
		absSum += math.Abs(d)
	}

	mae = absSum / float64(n)
	if ssTot == 0 {
		return 0, mae
	}
	return 1 - ssRes/ssTot, mae
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
