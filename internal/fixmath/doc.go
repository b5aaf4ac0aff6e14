// Package fixmath implements the fixed-point geometry kernel used to flatten
// curves and compute pixel bounds of outlines.
//
// Two number formats are used throughout:
//
//   - Angle is a signed angle in 1/65536 degree units. Arithmetic on angles
//     wraps modulo a full turn (Angle2PI).
//   - Point coordinates are sub-pixel values in 1/64 pixel units, expressed
//     with fixed.Int26_6 from golang.org/x/image/math/fixed.
//
// Lengths, trigonometric results and the operands of Multiply, Divide and
// MulDiv are 16.16 fixed-point integers carried in int64.
//
// All functions are pure: they neither allocate nor keep state, so they are
// safe to call from any goroutine.
package fixmath
