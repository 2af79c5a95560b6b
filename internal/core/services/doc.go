// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO dependencies.
package services
