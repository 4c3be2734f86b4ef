// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"os"

	"github.com/saferwall/dxf/log"
	"golang.org/x/text/encoding"
)

// Options configures how a Drawing is loaded, mirroring the teacher's
// own Options{Fast, SectionEntropy, ...} struct passed to pe.New.
type Options struct {
	// Encoding overrides $DWGCODEPAGE-based code-page detection for
	// pre-R2007 ASCII files (Drawing.LoadWithEncoding).
	Encoding encoding.Encoding

	// DropUnknownEntities controls whether entity/object/table-record
	// variants this library does not model are discarded instead of
	// being preserved as a raw pair bucket. The zero value keeps them,
	// which is the documented default (§4.E step 6, §7 policy).
	DropUnknownEntities bool

	// MaxExtensionDataDepth overrides the default nesting limit of 16
	// for extension-data groups (§4.D). Zero means use the default. It
	// applies to entities and objects read by the generic field-table
	// loop; the custom body readers (HATCH, INSERT, LWPOLYLINE, MTEXT,
	// POLYLINE, SPLINE, DICTIONARY) always use the default limit.
	MaxExtensionDataDepth int

	// Logger receives every message added to Drawing.Warnings (unknown
	// header slot, unknown section, dropped thumbnail, duplicate header
	// variable, owners rehomed on save). Enum fallbacks are not
	// reported. Defaults to a filtered stdout logger at warn level.
	Logger log.Logger
}

// defaultOptions returns the zero-value Options populated with the
// documented defaults.
func defaultOptions(opts *Options) *Options {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.MaxExtensionDataDepth == 0 {
		o.MaxExtensionDataDepth = maxExtensionDataDepth
	}
	if o.Logger == nil {
		o.Logger = log.NewFilter(log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelWarn))
	}
	return &o
}
