// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

const (
	PI  = 3.1415926535897932 // Pi
	PPM = 1000000            // Parts per million

	// Arc-seconds to radians, split into a double-double pair. The error term
	// is the remainder of the exact decimal value after rounding to float64.
	SecToRad    = 0.000004848136811095359935899141023579480
	SecToRadErr = 9.320078015422868e-23

	// Length of the tropical year in seconds. Elapsed time for time-dependent
	// frame parameters is counted in tropical years.
	TropicalYearSec = 31556925.445

	// Tolerance [m] for axis length comparison in approximate mode.
	LinearTol = 0.01
)
