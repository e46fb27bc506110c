// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Session data is read and written through the driven stores. Services touch
// the filesystem directly only to inspect paths the user passes in.
package services
