// Package sqlite provides the query cache persistence adapter backed by SQLite.
package sqlite
