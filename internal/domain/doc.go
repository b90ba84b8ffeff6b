// Package domain rasterizes sparse land/sea point samples into a global grid.
//
// # Grid Conventions
//
// The base grid has 180*r rows and 360*r columns for a resolution of r
// cells per degree. Cells are indexed [lat][lon]:
//
//	lat index = round((latitude + 90) * r), clamped to [0, rows)
//	lon index = round((longitude + 180) * r), wrapped modulo cols
//
// Row 0 is the pole row. Column cols-1 is adjacent to column 0 (the
// antimeridian), so every horizontal operation wraps.
//
// # Categories
//
// While filling, a cell is Unknown, Land or Sea. Unknown and Sea are kept
// apart so that "no sample yet" is never mistaken for "sampled sea". Once
// [Fill] completes the grid is collapsed into a [Mask] holding only 1
// (land) or 0 (sea); [Aggregate] and everything downstream work on masks.
//
// # Filling
//
//	1. Seed row 0 to Sea.
//	2. Latitude pass: each sampled column copies the previous row's value
//	   into unknown cells, top to bottom.
//	3. Longitude pass (only if unknowns remain): on each row, the unknown
//	   run between two known cells is split at the midpoint; the left
//	   half, including the middle cell of an odd run, takes the left
//	   value. The last known cell pairs with the first across the
//	   antimeridian.
//
// # Aggregation
//
// A target shape (R, C) must evenly divide the base shape. Each target
// cell averages an fx by fy window (fx = rows/R, fy = cols/C) starting
// fx/2 rows and fy/2 columns before its first source cell. The window is
// clamped at the poles and wraps in longitude; the mean is rounded half
// away from zero, so a 50/50 window is land.
package domain
