// Package config provides the configuration for one imgsweep run.
// Values come from command-line flags only; nothing is read from or
// written to disk between runs.
package config
