// Package repositories implements SQLite persistence for the request journal.
//
// Key Implementations:
//   - [RequestLogRepository] : one row per dispatched Web API call, with pruning by age
//
// [RequestLogRepository] doubles as the dispatcher's recorder, so wiring it into
// services.APIServiceOpts is all it takes to journal traffic.
package repositories
