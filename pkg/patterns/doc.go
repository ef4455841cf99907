// Package patterns holds the statically linked sample modules exercised by
// the smoke tests: a generic singleton, a fluent builder, shape and notifier
// factories, a weather-station observer and a user repository with memory,
// SQLite and JSON file backends.
package patterns
