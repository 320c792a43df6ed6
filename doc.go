// SPDX-License-Identifier: MIT

// Package cellnet is a Cellular Neural Network simulator.
//
// A CNN is a grid of cells, one per pixel. Each cell evolves under a local
// rule, the template, that couples it to its 3×3 neighbourhood through a
// state feedback kernel A, an input kernel B, an optional nonlinear kernel D
// and a bias z. Integrating the grid over time turns images into images:
// edge maps, thresholds, logic operations, erosion and dilation.
//
// Subpackages, leaf to root:
//
//	matrix/   dense cell-state buffers, halo rings, black-cell counts
//	boundary/ constant, zero-flux and periodic halo fills
//	template/ templates, coefficient expansion, nonlinearities, libraries
//	imageio/  image decode/encode to the [-1, 1] cell range
//	display/  frame sinks: recorder, async queue, GIF, terminal view
//	cnn/      the integrator (RK4 or Euler, parallel row bands)
//	regions/  connected black regions and bridges between them
//	sequence/ chained template runs
//	config/   YAML configuration of the command line tool
//	logging/  zap logger construction
//	cmd/cnnsim the command line tool
//
// Quick start:
//
//	img, _ := imageio.Load("in.png")
//	edge, _ := template.Builtin(template.EDGE)
//	dyn, _ := cnn.FromTemplate(edge)
//	out, _ := cnn.Integrate(ctx, cnn.Request{Init: img, Dynamics: dyn, DT: 0.1, TEnd: 10})
package cellnet
