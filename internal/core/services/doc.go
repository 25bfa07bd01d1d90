// Package services implements the core application services: ingestion,
// retrieval, context assembly and the cached ask flow.
package services
