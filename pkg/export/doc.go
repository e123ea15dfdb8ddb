// Package export writes conversion history and single results in the
// delimited-text and plain-text formats used for sharing results outside
// the application.
package export
