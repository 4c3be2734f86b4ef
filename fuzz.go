// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

//go:build gofuzz

package dxf

import "bytes"

// Fuzz exercises Load against arbitrary bytes. The format has no magic
// byte beyond the optional binary sentinel, so almost any input is
// "valid" ASCII DXF as far as the tokenizer is concerned; the
// interesting crashes are in the structural state machine and the
// custom entity readers, not the tokenizer.
func Fuzz(data []byte) int {
	d, err := Load(bytes.NewReader(data), nil)
	if err != nil {
		return 0
	}
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return 0
	}
	return 1
}
