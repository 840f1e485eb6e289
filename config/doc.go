// Package config loads depthlath settings with viper: built-in defaults,
// then an optional YAML file, then DEPTHLATH_ environment variables, and
// maps them onto analysis option slices.
package config
