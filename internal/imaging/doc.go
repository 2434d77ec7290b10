// Package imaging loads images and converts them to and from the flat RGBA
// buffers used by the segmentation and selection packages.
//
// # Buffers
//
// A Buffer stores straight-alpha RGBA bytes, row-major with no row padding.
// FromImage converts any decoded image.Image into that layout and
// Buffer.Image wraps it back as *image.NRGBA without copying.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y downward. Rectangles are given as an
// inclusive top-left corner plus a width and height.
//
// # Transforms
//
// Crop, Rotate (clockwise quarter turns), Flip and Resize each return a new
// Buffer and never modify their input. Resize offers four quality levels
// from nearest neighbour to Lanczos.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. It stores decoded images and hands
// out fresh Buffer copies, so callers may modify what LoadBuffer returns.
package imaging
