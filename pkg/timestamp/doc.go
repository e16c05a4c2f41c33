// Package timestamp provides the pluggable strategies chronoprune uses to
// resolve an item's timestamp: file metadata (modification, access or change
// time) or a time parsed out of the item's name with a Go time layout.
package timestamp
