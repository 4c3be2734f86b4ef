// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "testing"

func TestVersionFromWire(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"AC1006", VersionR10},
		{"AC1009", VersionR12},
		{"AC1012", VersionR13},
		{"AC1021", VersionR2007},
		{"AC1032", VersionR2018},
		{"garbage", VersionR2018},
	}
	for _, tt := range tests {
		if got := VersionFromWire(tt.in); got != tt.want {
			t.Errorf("VersionFromWire(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVersionOrdering(t *testing.T) {
	if !VersionR2018.IsAtLeast(VersionR10) {
		t.Error("R2018 should be at least R10")
	}
	if VersionR10.IsAtLeast(VersionR13) {
		t.Error("R10 should not be at least R13")
	}
	if !VersionR10.IsPreR13() {
		t.Error("R10 should be pre-R13")
	}
	if VersionR13.IsPreR13() {
		t.Error("R13 should not be pre-R13")
	}
}

func TestVersionRangeContains(t *testing.T) {
	r := from(VersionR13)
	if r.contains(VersionR12) {
		t.Error("range from R13 should not contain R12")
	}
	if !r.contains(VersionR2018) {
		t.Error("range from R13 should contain R2018")
	}
	if !always.contains(VersionR10) || !always.contains(VersionR2018) {
		t.Error("always should contain every version")
	}
}
