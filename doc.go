// Package rgbe loads and handles RGBE-format HDR textures.
//
// The texel subpackage provides the common-exponent floating point texel
// formats and the conversions between them and independent floating-point
// channels: RGBE8, which is storable in Radiance HDR and PNG files, and
// RGB9E5, the GPU texture format. This package adds the file plumbing on
// top: whole-image conversion, Radiance picture loading, and an RGBE8 PNG
// container that stores the exponent in the alpha channel.
//
// The intended flow is to store HDR textures as RGBE8 PNG files and
// repack them to RGB9E5 for the GPU when loading, optionally caching the
// repacked texels with the texpak subpackage.
package rgbe
