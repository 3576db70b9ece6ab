// Package reshape turns the SNPs, Scaling and Data tables of a split
// genotyping report into loader-ready tables: Markers, which names each
// marker, and Grid, which has one row per sample well and one column per
// marker.
package reshape
