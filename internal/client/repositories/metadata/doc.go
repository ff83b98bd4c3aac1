// Package metadata stores small named values (the bearer credential, the
// guest cart) in the local SQLite database.
package metadata
