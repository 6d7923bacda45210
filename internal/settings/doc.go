// Package settings defines the configuration record: the field names stored
// in the synced and local areas, the closed list of secret fields, loading
// into a typed Settings value, and fail-fast validation of the selected
// provider before any network call is attempted.
package settings
