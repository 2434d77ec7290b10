// Package segment implements rectangle-seeded foreground extraction (GrabCut).
//
// Given a straight-alpha RGBA buffer and a rectangle drawn around the subject,
// Segment produces a single-channel mask where 255 marks foreground and 0 marks
// background. The pipeline is:
//
//  1. Trimap: pixels outside the rectangle are definite background, pixels
//     inside are probable foreground.
//  2. Colour models: one 5-component Gaussian mixture per class, seeded by
//     deterministic farthest-point clustering and refined by hard assignment.
//  3. Refinement: probable pixels are relabelled when one model explains the
//     colour more than twice as well as the other, then both models are refit.
//  4. Graph cut: a 4-connected pixel graph with terminal (t-link) and
//     neighbour (n-link) capacities is solved with Dinic's max-flow algorithm.
//     The source terminal stands for background, the sink for foreground:
//     definite-background pixels are tied to the source, so pixels still
//     reachable from it after the solve are written as background (0).
//
// # Determinism
//
// Nothing in this package is random. Identical inputs always produce a
// bit-identical mask, and all working state (trimap, models, graph) is owned
// by a single Segment call.
//
// # Degenerate Input
//
// A class without samples (for example a rectangle covering the whole image)
// is not an error. Its model stays untrained and every probability evaluates
// to the 1e-10 floor, so the call completes with reduced discrimination.
//
// # Errors
//
// Contract violations are reported before any output is written:
//   - ErrInvalidDimensions: empty buffer or non-positive width/height
//   - ErrBufferMismatch: buffer length is not width*height*4
//   - ErrMaskTooSmall: mask shorter than width*height
//   - ErrInvalidRect: empty rectangle or rectangle outside the image
package segment
