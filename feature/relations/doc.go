// Package relations keeps the automatic relations of documents, media and
// members in sync with the references found in their property values.
//
// The Service loads the entities named by a notification, reconciles them in
// one database transaction with the core/reconcile engine and records
// metrics. It subscribes to every (kind, event) pair of the notification bus,
// so the kafka consumer and the HTTP API share one code path. Rebuild walks
// every entity of a kind in batches.
//
// The Exporter writes JSON snapshots of relations to object storage under
// exports/.
//
// # Routes
//
//   - GET  /relations/{parentId}?types=umbMedia,umbDocument
//   - POST /relations/reconcile
//   - GET  /relations/exports
//   - POST /relations/exports
//
// Sub-packages: editors (property editor reference factories), models (GORM
// models of the CMS tables) and store (GORM implementations of the engine's
// collaborators).
package relations
