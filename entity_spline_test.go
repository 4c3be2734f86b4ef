// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestSplineKnotControlFitRuns(t *testing.T) {
	content := "0\nSPLINE\n8\n0\n70\n0\n71\n3\n" +
		"40\n0.0\n40\n0.0\n40\n1.0\n40\n1.0\n" +
		"10\n0.0\n20\n0.0\n30\n0.0\n" +
		"10\n1.0\n20\n1.0\n30\n0.0\n" +
		"11\n0.5\n21\n0.5\n31\n0.0\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "SPLINE" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	s := &Spline{}
	if err := s.ReadBody(it, nil); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if len(s.Knots) != 4 {
		t.Errorf("got %d knots, want 4", len(s.Knots))
	}
	if len(s.ControlPoints) != 2 {
		t.Fatalf("got %d control points, want 2", len(s.ControlPoints))
	}
	if s.ControlPoints[1] != [3]float64{1.0, 1.0, 0.0} {
		t.Errorf("control point[1] = %v, want (1,1,0)", s.ControlPoints[1])
	}
	if len(s.FitPoints) != 1 || s.FitPoints[0] != [3]float64{0.5, 0.5, 0.0} {
		t.Errorf("fit points = %v, want one point (0.5,0.5,0)", s.FitPoints)
	}
}
