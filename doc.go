// Package floodfield estimates static flood surfaces over elevation rasters
// from a mask of known water sources.
//
// 🌊 What is floodfield?
//
//	A pure-Go pipeline that turns tiled terrain into a renderer-ready water layer:
//		• Terrain: tile store with gap filling, bilinear sampler, ASC reader
//		• Grid graph: 8-neighbour raster graph with uphill-penalising arc costs
//		• Shortest paths: multi-source Dijkstra with per-cell nearest source
//		• Flood: quadratic height falloff, flooded-cell test, masked smoothing
//		• Feed: JSON and WebSocket delivery to a renderer
//
// Packages:
//
//	raster/    — Window, HeightField and SourceMask grid types
//	terrain/   — Tile, Store, Sampler and the ESRI ASCII grid reader
//	gridgraph/ — GridGraph construction and connected components
//	dijkstra/  — MultiSource shortest paths over any Order/Arcs graph
//	flood/     — Simulate, Reconstruct, Basic and the Result raster
//	feed/      — HTTP/WebSocket server for results
//	cmd/floodserve — command wiring all of the above
//
// Quick ASCII example (lake in the west column, terrain rising east):
//
//	height   0  1  2  3        result   ~  ~  #  #
//	         0 .5  2  3                 ~  ~  #  #
//	         0  1  2  3                 ~  ~  #  #
//
// The model is a heuristic: water spreads along cheap downhill routes and
// rises at most MaxFloodHeight over its source. There is no volume
// conservation and no time evolution.
//
//	go get github.com/katalvlaran/floodfield
package floodfield
