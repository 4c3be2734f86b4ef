// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// maxExtensionDataDepth is the nesting limit for extension-data
// groups (§3 Extension data, §4.D): a group opened 17 levels deep
// fails the read with ErrExtensionDataTooDeep.
const maxExtensionDataDepth = 16

// ExtensionData is one named group introduced by a code-102 "{name"
// pair and closed by a code-102 "}" pair. Interior pairs not otherwise
// recognised, and nested groups, are preserved verbatim and in order
// (§3 Extension data, §4.D).
type ExtensionData struct {
	// GroupName is the application/group name following the "{" in
	// the opening pair's string value, e.g. "{ACAD_REACTORS".
	GroupName string
	Pairs     []CodePair
}

// readExtensionData consumes one extension-data group starting after
// the opening (102, "{name") pair has already been read and is passed
// in as open. It stops at the matching (102, "}"), tracking nesting
// depth against maxExtensionDataDepth.
func readExtensionData(it *pairIterator, open CodePair, maxDepth int) (ExtensionData, error) {
	return readExtensionDataDepth(it, open, maxDepth, 1)
}

func readExtensionDataDepth(it *pairIterator, open CodePair, maxDepth, depth int) (ExtensionData, error) {
	if depth > maxDepth {
		return ExtensionData{}, ErrExtensionDataTooDeep
	}
	groupName := open.Str
	if len(groupName) > 0 && groupName[0] == '{' {
		groupName = groupName[1:]
	}
	ext := ExtensionData{GroupName: groupName}
	for {
		pair, ok, err := it.next()
		if err != nil {
			return ExtensionData{}, err
		}
		if !ok {
			return ExtensionData{}, &UnexpectedEndOfInputError{Offset: it.offset(), Context: "extension data group"}
		}
		if pair.Code == 102 {
			if pair.Str == "}" {
				return ext, nil
			}
			// Nested group: recurse, then splice its pairs back in so
			// a writer can reproduce the same open/close fence.
			nested, err := readExtensionDataDepth(it, pair, maxDepth, depth+1)
			ext.Pairs = append(ext.Pairs, pair)
			ext.Pairs = append(ext.Pairs, nested.Pairs...)
			ext.Pairs = append(ext.Pairs, StringPair(102, "}"))
			if err != nil {
				return ExtensionData{}, err
			}
			continue
		}
		ext.Pairs = append(ext.Pairs, pair)
	}
}

// writePairs emits the (102,"{name") ... (102,"}") fence and interior
// pairs for this group.
func (e ExtensionData) writePairs(sink pairSink) error {
	if err := sink.Emit(StringPair(102, "{"+e.GroupName)); err != nil {
		return err
	}
	for _, p := range e.Pairs {
		if err := sink.Emit(p); err != nil {
			return err
		}
	}
	return sink.Emit(StringPair(102, "}"))
}
