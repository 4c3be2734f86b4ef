// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// PairReader is the common surface all three wire encodings (ASCII,
// pre-R13 binary, post-R13 binary) implement (§4.A). Next returns
// ok=false only on a clean end of stream; any other failure to decode
// the next pair is a non-nil error.
type PairReader interface {
	Next() (pair CodePair, ok bool, err error)
	// Offset returns the byte offset of the most recently produced
	// pair, for error reporting (§9 Offset tracking).
	Offset() int64
}

// PairWriter is the common sink all three wire encodings implement.
type PairWriter interface {
	Emit(pair CodePair) error
}

type pairSink interface {
	PairWriter
}

// pairIterator adds one-pair lookahead on top of a PairReader, needed
// by the XDATA reader ("continue while the next peeked pair has code
// >= 1000", §4.D) and by the entity reader's subclass/SEQEND lookahead.
type pairIterator struct {
	r        PairReader
	buffered *CodePair
	bufOK    bool
	bufErr   error
	hasBuf   bool
}

func newPairIterator(r PairReader) *pairIterator {
	return &pairIterator{r: r}
}

func (it *pairIterator) next() (CodePair, bool, error) {
	if it.hasBuf {
		it.hasBuf = false
		return derefOrZero(it.buffered), it.bufOK, it.bufErr
	}
	return it.r.Next()
}

func (it *pairIterator) peek() (CodePair, bool, error) {
	if !it.hasBuf {
		p, ok, err := it.r.Next()
		it.buffered = &p
		it.bufOK = ok
		it.bufErr = err
		it.hasBuf = true
	}
	return derefOrZero(it.buffered), it.bufOK, it.bufErr
}

func (it *pairIterator) offset() int64 {
	return it.r.Offset()
}

func derefOrZero(p *CodePair) CodePair {
	if p == nil {
		return CodePair{}
	}
	return *p
}
