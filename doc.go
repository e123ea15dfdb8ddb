/*
Package worldforge is a high-precision coordinate transform engine for converting
3D points between a parent object's local frame and world space.

A parent is described by a TRS transform: position, Euler rotation in degrees and
a non-uniform scale. Every computation uses arbitrary-precision decimal arithmetic,
including sine and cosine, so a local→world→local round trip reproduces the input
far beyond float64 accuracy.

# Concept

The Engine is stateless. Each call takes a complete request (direction, parent
transform, point, display precision) and returns a result whose full-precision
value does not depend on the display precision. Callers own everything around it:
history, presets, transports. Those live behind the ports in pkg/ports so the engine
can be embedded in a CLI, an HTTP server or an MCP tool host.

# Key Features

  - Decimal Trigonometry: Taylor series sine/cosine on shopspring/decimal values.
  - Exact Identity: the identity transform maps every point to itself, digit for digit.
  - Degeneracy Checks: world→local refuses near-zero scale components with ErrDegenerateScale.
  - Presets: named parent transforms read from a Loam repository or the built-in set.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/worldforge"
		"github.com/aretw0/worldforge/pkg/domain"
	)

	func main() {
		eng, err := worldforge.New("") // built-in presets
		if err != nil {
			log.Fatal(err)
		}

		parent := domain.Transform{
			Position: domain.Vec(5, 0, 0),
			Rotation: domain.Vec(0, 90, 0),
			Scale:    domain.Vec(1, 1, 1),
		}

		res, err := eng.LocalToWorld(context.Background(), parent, domain.Vec(2, 0, 0), 2)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Format()) // (7.00, 0.00, 0.00)
	}
*/
package worldforge
