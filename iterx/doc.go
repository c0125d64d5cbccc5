// Package iterx extends [iter.Seq] and [iter.Seq2] with chainable selection and transformation.
//
// Every iterator in this package stops as soon as the consumer stops, so they're safe to break out of in a range-over-func loop.
package iterx
