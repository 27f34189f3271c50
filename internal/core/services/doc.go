// Package services contains the core application services wiring the
// driving ports to the driven adapters: ingestion, library access,
// reading positions and the directory watcher.
package services
