// Package domain holds the core types, sentinel errors, and the interfaces
// the rest of the application is wired through. It has no dependencies on
// transport or persistence packages.
package domain
