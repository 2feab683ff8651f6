// Package ctlfiles holds module-level metadata.
package ctlfiles

// Version is the ctlfiles release version.
const Version = "0.1.0"
