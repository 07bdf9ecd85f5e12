// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Solve the observation equation using weighted least squares
// - dx = (G^t W G)^-1 G^t W dr
// - Return the error covariance matrix (G^t W G)^-1 as cov
func solveLS(G mat.Matrix, dr mat.Vector, W mat.Matrix) (dx mat.Vector, cov mat.Matrix, err error) {

	n1, m1 := G.Dims()
	n2, m2 := W.Dims()
	if n1 != n2 {
		return nil, nil, fmt.Errorf("invalid matrix size. G^T(%d x %d), W(%d x %d)", m1, n1, n2, m2)
	}
	l1 := dr.Len()
	if l1 != m2 {
		return nil, nil, fmt.Errorf("invalid matrix size. W(%d x %d), dr(%d x 1)", n2, m2, l1)
	}

	// A（G^t W G)
	var WG mat.Dense
	WG.Mul(W, G)
	var A mat.Dense
	A.Mul(G.T(), &WG)

	// b（G^t W dr）
	var GtW mat.Dense
	GtW.Mul(G.T(), W)
	var b mat.VecDense
	b.MulVec(&GtW, dr)

	// Solve for x (x = A^-1 b)
	var x mat.VecDense
	err = x.SolveVec(&A, &b)
	if err != nil {
		return nil, nil, err
	}
	dx = &x

	// Set (G^T W G)^-1 as the covariance matrix
	var c mat.Dense
	err = c.Inverse(&A)
	if err != nil {
		return nil, nil, err
	}
	cov = &c

	return
}

// FitPositionVector estimates the 7 Bursa-Wolf parameters from control
// points known in both geocentric frames, by linearized weighted least
// squares with unit weights. At least 3 well-distributed points are needed
// (9 equations for 7 unknowns). Weights may be nil for unit weights, or one
// value per point.
//
// The linearized model per point, with u = rotation in radians and
// s = scale ratio:
//
//	dst.X - src.X = tX + s*X - uZ*Y + uY*Z
//	dst.Y - src.Y = tY + uZ*X + s*Y - uX*Z
//	dst.Z - src.Z = tZ - uY*X + uX*Y + s*Z
func FitPositionVector(src, dst []PosXYZ, weights []float64) (*BursaWolfParameters, error) {
	n := len(src)
	if n != len(dst) {
		return nil, fmt.Errorf("control point count mismatch: %d source, %d destination", n, len(dst))
	}
	if n < 3 {
		return nil, fmt.Errorf("need at least 3 control points, have %d", n)
	}
	if weights != nil && len(weights) != n {
		return nil, fmt.Errorf("weight count is %d, want %d", len(weights), n)
	}

	G := mat.NewDense(3*n, 7, nil)
	dr := mat.NewVecDense(3*n, nil)
	W := mat.NewDiagDense(3*n, nil)
	for k := 0; k < n; k++ {
		x, y, z := src[k].X, src[k].Y, src[k].Z
		G.SetRow(3*k+0, []float64{1, 0, 0, 0, z, -y, x})
		G.SetRow(3*k+1, []float64{0, 1, 0, -z, 0, x, y})
		G.SetRow(3*k+2, []float64{0, 0, 1, y, -x, 0, z})
		dr.SetVec(3*k+0, dst[k].X-x)
		dr.SetVec(3*k+1, dst[k].Y-y)
		dr.SetVec(3*k+2, dst[k].Z-z)
		w := 1.0
		if weights != nil {
			w = weights[k]
		}
		W.SetDiag(3*k+0, w)
		W.SetDiag(3*k+1, w)
		W.SetDiag(3*k+2, w)
	}

	dx, _, err := solveLS(G, dr, W)
	if err != nil {
		return nil, fmt.Errorf("least squares failed: %w", err)
	}

	p := &BursaWolfParameters{
		TX: dx.AtVec(0),
		TY: dx.AtVec(1),
		TZ: dx.AtVec(2),
		RX: dx.AtVec(3) / SecToRad, // rad -> arc-second
		RY: dx.AtVec(4) / SecToRad,
		RZ: dx.AtVec(5) / SecToRad,
		DS: dx.AtVec(6) * PPM, // ratio -> ppm
	}
	return p, nil
}
