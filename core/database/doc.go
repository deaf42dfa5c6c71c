// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL connections (production) or sqlite databases
// (local runs and tests) from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns and ColumnSet read the live column definitions of a table.
// The integrity feature compares them against the relation models to detect
// schema drift before the service starts writing relations.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "umbracoRelation")
package database
