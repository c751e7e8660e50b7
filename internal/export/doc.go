// Package export renders study packs as printable documents.
package export
