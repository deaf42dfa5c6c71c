// Package integrity provides health checks over the relation data and its storage.
//
// # Checks Provided
//
//   - Structure: Checks that the folders the exporter writes to exist in the bucket.
//   - Server: Validates that the relation tables match the GORM models (columns, types).
//   - Relations: Reports automatic relation types missing from the registry and
//     relations whose parent or child node no longer exists.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/server : Runs server schema check.
//   - GET /integrity/relations : Runs relations check (supports ?fix=true).
package integrity
