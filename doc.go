// Package svgpath provides planar parametric curves and paths as described by
// SVG path data.
//
// # Segments
//
// A [Segment] is a curve over the parameter t ∈ [0, 1]. There are four kinds
// of segments, matching the drawing commands of SVG:
//   - [Line]
//   - [QuadBez], a quadratic Bézier
//   - [CubicBez], a cubic Bézier
//   - [Arc], an elliptical arc in SVG's endpoint parametrization
//
// Every segment can be evaluated, differentiated to any order, measured and
// bounded. Unit tangents and normals are defined even where the derivative
// vanishes, such as at the cusp of a cubic, by taking the limit of the
// direction of travel. Package functions such as [Reversed], [Cropped] and
// [Rotated] produce new segments of the same kind.
//
// The polynomial segments can be converted to and from power basis form, see
// [PolyCurve].
//
// # Paths
//
// A [Path] is a sequence of segments. Paths have a global parameter T ∈ [0, 1]
// that is proportional to arc length, and methods to convert between T and
// the parameters of individual segments. Paths may contain gaps; see
// [Path.IsContinuous] and [Path.ContinuousSubpaths].
//
// Paths can be written to and read from SVG path data with
// [Path.Description] and [ParseDescription].
//
// # Intersections and smoothing
//
// [Intersect] finds the points where two segments meet, and
// [Path.Intersect] does the same for paths, including the self-intersections
// of a single path. [Smoothed] replaces the corners of a path with short
// Bézier curves.
//
// # Coordinate system
//
// Like SVG, this package uses a y-down coordinate system. Positive rotation
// angles turn the x axis towards the y axis, which appears clockwise on
// screen.
//
// # Numerical accuracy
//
// Most computations are exact up to floating point rounding. Arc lengths of
// Béziers and elliptical arcs use adaptive numerical integration, configured
// by [ArclenOptions]. Iterative methods have hard limits and report
// [ErrNonConvergence] when they reach them. Points are compared with a
// tolerance, [DefaultTolerance] unless specified otherwise.
package svgpath
