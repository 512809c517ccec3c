// Package maskeraser implements the selection-to-mask pipeline behind a
// mask-based watermark eraser.
//
// A user drags a rectangle over the watermark; the package maps the gesture
// from display coordinates into image-native coordinates, normalizes the
// rectangle regardless of drag direction, and rasterizes it into a binary
// mask (black protects, white edits) sized exactly like the source image.
// The mask travels alongside the source image to an external generative
// image-editing API, which performs the actual removal. The package works
// entirely in memory and does no pixel analysis of its own.
package maskeraser
