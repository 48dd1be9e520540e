// Package utils provides common utility functions for the reconciler.
// It includes helper functions for type conversion of the heterogeneous
// values booking sources produce (CSV strings, JSON numbers, database
// columns) that don't fit into domain-specific packages.
package utils
