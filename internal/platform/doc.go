package platform

// Package platform contains OS integration glue: reading images handed over
// by the system picker, building data URIs from them, and sharing text
// through the host OS.
