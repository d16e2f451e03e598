// Package main provides the entry point for routeguard-cli.
//
// The CLI tool exercises the full session lifecycle against a
// configuration file:
//
//   - Authentication (login, logout, status)
//   - Role and permission checks
//   - Navigation simulation against the filter rules
//   - Configuration verification
//
// Usage:
//
//	routeguard-cli [command] [flags]
//	routeguard-cli --config routeguard.yaml login -u jose -r
//	routeguard-cli --config routeguard.yaml navigate /account /admin/users
//
// With storage.dir configured, remember-me state persists across
// invocations and status/check restore the session without a network
// round trip.
package main
