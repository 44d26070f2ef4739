// Package model holds the conference schedule object graph: registry
// entries (SessionData), their concrete grid occurrences (SessionInstance)
// and the Day / Timeslot / SessionSlot tree that places them.
package model
