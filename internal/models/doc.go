// Package models defines the domain models for TripSplit.
//
// A Trip is the aggregate root: it owns its Participants and Expenses and is
// stored and loaded as one unit. Everything derived from a trip (balances,
// settlements) is computed on demand by the calculator package and never
// persisted.
//
// # Relationships
//
// Expenses reference their payer by Participant ID. Relationships use ID
// strings rather than pointers so a Trip can be serialized as a single blob.
//
// # Validation
//
// The calculator assumes positive weights and amounts. Validate methods in
// this package are the boundary that enforces that; services call them before
// a trip is written.
package models
