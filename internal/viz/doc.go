// Package viz renders simulation output in the terminal: time-series
// plots of recorded variables, depth profiles of column fields, and a
// live view that steps a simulator interactively.
package viz
