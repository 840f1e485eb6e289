// Command spacegraph runs depthlath analyses over YAML-described models.
//
//	spacegraph vga --grid grid.yaml [--analysis local|global|depth|path] [--select x,y ...]
//	spacegraph segment --graph segments.yaml [--analysis tulip|angular-path|metric-path|topological-path] [--select ref,...]
//	spacegraph axial --graph lines.yaml
//	spacegraph stats --snapshot dir
//
// Global flags: --config, --debug, --snapshot, --progress. Settings come from
// defaults, the config file and DEPTHLATH_ environment variables, in that
// order of precedence from lowest to highest.
package main
