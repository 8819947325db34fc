// Package detection extracts walls from binarized floor plans and measures them.
//
// This package turns a black/white raster plan into a list of walls with real
// world lengths, thicknesses and areas, grouped by construction type, in the
// shape tender quantity take-offs need. It is a deterministic scanner rather
// than a trained model: it finds long straight runs of ink and reasons about
// their thickness and position.
//
// # Pipeline
//
// Pipeline.Analyze runs these stages in order. Each stage is also exported on
// its own and never modifies its input:
//
//  1. Calibrate: pixels-per-meter from an explicit scale label, or estimated
//     from ink run widths on the horizontal midline
//  2. Scan: horizontal and vertical ink runs with a measured thickness
//  3. MergeAll: collinear pieces joined across small gaps, repeated until stable
//  4. Connect: segments whose endpoints touch grouped into walls (corners, tees)
//  5. Classify: exterior, insulated, load-bearing, partition or drywall
//  6. Measure: conversion to meters and square meters
//  7. Aggregate and Summarize: per-type and overall totals
//
// Binarization of decoded images lives in the imaging package;
// Pipeline.AnalyzeImage chains it in front of the stages above.
//
// # Coordinate System
//
// Segment coordinates are pixels in the analyzed image with the origin at the
// top-left corner. A horizontal segment lies on the row where its wall's top
// edge was found and its body extends downward; a vertical segment lies on the
// wall's left edge and extends rightward.
//
// # Heuristics
//
// Scale estimation assumes the average wall on the midline is 0.25 m thick and
// is flagged as an estimate in ScaleInfo. Wall types are inferred from
// thickness and closeness to the sheet edge only. All thresholds live in
// Config so they can be tuned per drafting standard.
//
// # Concurrency
//
// A Pipeline is immutable after NewPipeline and safe for concurrent use.
// Analyze is synchronous and does not check for cancellation.
package detection
