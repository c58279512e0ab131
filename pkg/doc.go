// Package pkg provides the core libraries for tkfmw canvas layout.
//
// # Overview
//
// tkfmw partitions a canvas into a focus rectangle plus four
// background regions and positions tiles on a grid. The pkg directory
// is organized into four main areas:
//
//  1. [geometry] - Domain logic (rectangles, tile grids, layer partitions)
//  2. [canvas], [imgio] - Drawing and image import/export
//  3. [cache], [session] - Infrastructure (result cache, crop sessions)
//  4. [pipeline], [api] - Orchestration (load → layout → render) and HTTP
//
// # Architecture
//
// The typical data flow through tkfmw:
//
//	Source image
//	         ↓
//	    [imgio] package (decode + content hash)
//	         ↓
//	    [geometry] package (layer partition, tile positions)
//	         ↓
//	    [canvas] package (crop, preview, tiles)
//	         ↓
//	    PNG/JPEG/JSON output
//
// # Quick Start
//
// Compute a partition and crop an image:
//
//	layer := geometry.Partition(100, 80, 640, 480, 1920, 1080)
//	crop := imgio.CropRect(img, layer.Focus)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "photo.png",
//	    Focus: geometry.Rect{X: 100, Y: 80, Width: 640, Height: 480},
//	})
package pkg
