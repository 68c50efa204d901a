// Package naming converts schema-derived strings into identifiers.
//
// Three forms are produced: field identifiers (lower camel case), type
// identifiers (upper camel case), and enum constant identifiers (upper snake
// case). Every function is total: any input string, including the empty
// string, produces a result.
//
// Leading digits are prefixed with '$' so that the result never starts with
// a digit. Field identifiers keep a single leading underscore when the input
// starts with one; type identifiers drop it.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
