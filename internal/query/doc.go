// Package query runs data requests for Bubble Tea models.
//
// A Query issues one request at a time. Running a new request cancels the
// previous one, and results from superseded requests, or from any request after
// Close, are discarded by Resolve and never reach the model's state.
package query
