// Package depthlath is a toolkit for space-syntax style analysis of spatial
// networks: visibility grids, angular segment maps and axial maps.
//
// What is depthlath?
//
//	A set of small packages that together take a spatial model, walk it,
//	and write per-entity measures into a columnar attribute table:
//		• Connectivity models: point grids with line-of-sight visibility,
//		  directed angular segment graphs, axial line graphs
//		• Traversals: tulip-binned angular, metric and step-depth walks
//		• Measures: integration (HH, P-value, Tekl), entropy, choice,
//		  control, controllability, clustering
//		• Analyses: whole-graph sweeps and point-to-point shortest paths
//		• Progress: cooperative cancellation and progress reporting
//		• Storage: attribute tables with badger-backed snapshots
//
// Subpackages:
//
//	connectivity/   PointGrid, SegmentGraph, LineGraph and their builders
//	tulip/          angular bins and the seeded random source for tie-breaks
//	traverse/       Angular, Metric and Step walkers with radius and target
//	metrics/        depth summaries, local measures, choice accumulation
//	attr/           attribute Table, Store interface, badger snapshots
//	sink/           column bookkeeping for one analysis run
//	progress/       Communicator, Poller, Shared worker comm, progress bar
//	analysis/       the analyses, RunContext and the traced Execute entry
//	config/         viper settings mapped onto analysis options
//	cmd/spacegraph/ CLI over YAML fixtures
//
// Quick example: three segments in a row, angular route from 0 to 2:
//
//	0 ── 1 ── 2
//
//	rc, _ := analysis.NewRunContext(ctx, attr.NewTable(sg.Refs()),
//		analysis.WithSelection(0, 2))
//	a, _ := analysis.NewSegmentTulipShortestPath(sg)
//	res, err := analysis.Execute(a, rc)
//
//	go install github.com/katalvlaran/depthlath/cmd/spacegraph@latest
package depthlath
