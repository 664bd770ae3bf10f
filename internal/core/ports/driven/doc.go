// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BuildingStore: Buildings and their ordered floors
//   - TagStore: Tagged locations
//   - ConnectorStore: Per-floor vertical connector records
//   - PathStore: Single-floor and multi-floor paths
//   - EditorStateStore: Selected building, floor and mode
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Prompter: Connector floor-switch decisions. Without it every
//     connector hit is treated as a decline.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
