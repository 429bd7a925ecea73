// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate bitarray errors.
//
// This package is not exposed to the public API, since the internal error
// type is not a stable interface. Users classify errors through the
// bitarray.Error interface instead.
package errors

import "fmt"

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	Internal

	// Invalid indicates that the input violates the domain of an operation:
	// an empty weight map, a malformed histogram, an ambiguous prefix code,
	// or a malformed header or padding field.
	Invalid

	// Type indicates that the inputs cannot be used together, such as
	// weights that are not mutually comparable.
	Type

	// Truncated indicates that the bit or byte source was exhausted before
	// a complete codeword, frame, or header could be read.
	Truncated

	// Exhausted indicates that the accumulated bits exceed every code length
	// defined by a canonical table without matching any codeword.
	Exhausted
)

// Error is the wrapper type for errors specific to this library.
type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)

	// Offset is the number of bytes consumed from the input when the error
	// was detected. It is only meaningful for Truncated errors.
	Offset int64
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	switch len(ss) {
	case 0:
		return "bitarray: unknown error"
	case 1:
		return "bitarray/" + ss[0]
	default:
		return "bitarray/" + ss[0] + ": " + ss[1]
	}
}

func (e Error) BitarrayError() {}
func (e Error) IsInternal() bool  { return e.Code == Internal }
func (e Error) IsInvalid() bool   { return e.Code == Invalid }
func (e Error) IsType() bool      { return e.Code == Type }
func (e Error) IsTruncated() bool { return e.Code == Truncated }
func (e Error) IsExhausted() bool { return e.Code == Exhausted }
func (e Error) InputOffset() int64 { return e.Offset }

// Errorf builds an Error of the given code with a formatted message.
func Errorf(code int, pkg, format string, args ...interface{}) Error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...)}
}

// Truncatedf builds a Truncated error that records how many bytes were
// consumed before the input ran out.
func Truncatedf(pkg string, offset int64, format string, args ...interface{}) Error {
	return Error{Code: Truncated, Pkg: pkg, Msg: fmt.Sprintf(format, args...), Offset: offset}
}

func IsInternal(err error) bool  { return isCode(err, Internal) }
func IsInvalid(err error) bool   { return isCode(err, Invalid) }
func IsType(err error) bool      { return isCode(err, Type) }
func IsTruncated(err error) bool { return isCode(err, Truncated) }
func IsExhausted(err error) bool { return isCode(err, Exhausted) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}

// errWrap is used by Panic to wrap errors so that Recover can tell them
// apart from ordinary panics.
type errWrap struct{ e *error }

func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case errWrap:
		*err = *ex.e
	default:
		panic(ex)
	}
}

func Panic(err error) {
	panic(errWrap{&err})
}

// Assert panics with an Internal error when cond is false. It is used for
// states that correct code can never reach.
func Assert(cond bool, pkg, msg string) {
	if !cond {
		Panic(Error{Code: Internal, Pkg: pkg, Msg: msg})
	}
}
