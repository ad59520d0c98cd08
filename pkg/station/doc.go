// Package station defines the station-layout document: the geometric
// primitives (tracks, platforms, restricted zones, shop zones,
// infrastructure blocks, element groups) and the StationLayout aggregate
// that owns them.
//
// Coordinate convention: a single 2D plane, Y grows downward. A platform's
// body thickness is stored in its Width field, so the body's bottom edge is
// Y + Width. Tracks and buffer zones attached to a platform are additive
// offsets above or below the body and are not included in Width.
//
// Shop zone X is relative to the owning platform's X. Everything else is
// absolute.
package station
