// Package policy holds the ownership and lifecycle rules shared by every resource.
//
// Mutations are authorized by comparing the authenticated subject with the record's
// owner before any write is issued. Records are never removed: deletion clears the
// active flag, and every filter that reads, searches or updates records is passed
// through Active so inactive records stay invisible.
package policy
