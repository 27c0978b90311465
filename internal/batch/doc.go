// Package batch groups document text fragments into fixed-size batches for
// translation calls, keeping an index map so translated strings land back
// on the fragments they came from.
package batch
