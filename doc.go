// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dxf decodes and encodes AutoCAD Drawing Interchange Format
// files: the tagged code-pair stream shared by ASCII DXF, pre-R13
// binary DXF, and post-R13 binary DXF, and the drawing object model
// built on top of it (header, classes, tables, blocks, entities,
// objects, and an optional preview thumbnail).
//
// Load a drawing with Load, LoadWithEncoding, or LoadFile, mutate it
// through the exported Header/Tables/Blocks/Entities/Objects fields,
// and write it back with Save or SaveBinary. Normalize assigns handles
// to anything added by hand before a write.
//
// LoadDXB and (*Drawing).SaveDXB handle the separate, smaller binary
// drawing exchange format (DXB), which carries a representative subset
// of entity kinds over the same CodePair abstraction.
package dxf
