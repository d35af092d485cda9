// Package kernel provides domain primitives shared by the order and audit models.
//
// The package includes:
//   - UUID: a validated identifier value object for store-assigned record ids
package kernel
