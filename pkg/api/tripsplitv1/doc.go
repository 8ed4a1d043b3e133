// Package tripsplitv1 defines the request and response messages of the
// tripsplit.v1 API. Messages are plain structs encoded as JSON on the wire;
// field names follow snake_case.
package tripsplitv1
