// Package cache stores GraphQL responses on disk with a TTL.
//
// Entries are JSON files named after the request key, written atomically via a
// temporary file and rename. Reads of expired entries remove the file and
// report ErrExpired; callers treat every error as a miss.
package cache
