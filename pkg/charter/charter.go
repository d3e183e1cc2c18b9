// Package charter holds module-wide metadata.
package charter

// Version is the current release version.
const Version = "0.1.0"
