// package repositories provides the persistence layer for the watermark and
// the run history, backed by SQLite.
package repositories
