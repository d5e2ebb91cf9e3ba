// Package svg renders a computed layout as a standalone SVG document.
//
// The renderer draws in screen coordinates: geometry y-axes point up, SVG
// y-axes point down, so every y value is negated on the way out. Elements
// are emitted back to front so base markers cover backbone and bond
// endpoints: pair bonds, backbone, strand-end arrows, base circles,
// labels, legend.
package svg
