// Package api defines the request and response messages of the splitledger
// RPC services. Messages are plain structs encoded as JSON by
// apiconnect.JSONCodec.
//
// Money in requests is a decimal string ("12.50") so clients never have to
// round-trip amounts through a float. Money in responses is a JSON number
// already rounded to two fractional digits.
package api
