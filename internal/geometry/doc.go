// Package geometry provides the planar primitives used to reason about crypt
// contours: distances, slopes, lines, angles, segment intersection, the
// principal axis of a point set and its minimum-area bounding rectangle.
//
// # Coordinate System
//
// Points use the image convention: origin at the top-left pixel, X grows
// rightward and Y grows downward. Integer [Point] values name pixels; real
// valued [Vec] values are used wherever a computation produces sub-pixel
// positions (for example the foot of a perpendicular).
//
// # Vertical Lines
//
// A vertical line has no finite slope. Instead of a magic number, [Slope]
// carries an explicit Vertical flag and every function that consumes a slope
// branches on it. Angles between a vertical and a finite slope are computed
// from the finite slope's inclination, so comparisons against thresholds such
// as 45° stay consistent no matter how steep a line is.
//
// # Angles
//
// All angles are in degrees:
//   - [AcuteAngleBetweenSlopes] returns a value in [0, 90]
//   - [AngleBetweenVectors] returns a value in [0, 180]
//
// All functions are pure and safe for concurrent use.
package geometry
