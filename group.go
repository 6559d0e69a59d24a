/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Groups of attributes
 */

package ippcodec

// Group represents a group of attributes with the
// same delimiter tag
type Group struct {
	Tag   Tag        // Group tag
	Attrs Attributes // Group attributes
}

// Groups is the ordered collection of attribute groups
// of a message
//
// Each group tag appears at most once. Groups are kept in
// the order they were first populated, and within a group,
// attributes are kept in insertion order
type Groups []Group

// Add adds Attribute to the group with the specified tag. The
// group is created, if it doesn't exist yet
func (groups *Groups) Add(tag Tag, attr Attribute) {
	i := groups.bucket(tag)
	(*groups)[i].Attrs.Add(attr)
}

// Group returns attributes of the group with the specified tag.
// The second return value is false if there is no such group
func (groups Groups) Group(tag Tag) (Attributes, bool) {
	for _, grp := range groups {
		if grp.Tag == tag {
			return grp.Attrs, true
		}
	}
	return nil, false
}

// Get returns the first attribute with the given name from
// the group with the specified tag
func (groups Groups) Get(tag Tag, name string) (Attribute, bool) {
	attrs, _ := groups.Group(tag)
	return attrs.Get(name)
}

// Clone creates a shallow copy of Groups
func (groups Groups) Clone() Groups {
	if groups == nil {
		return nil
	}

	groups2 := make(Groups, len(groups))
	for i, grp := range groups {
		groups2[i] = Group{grp.Tag, grp.Attrs.Clone()}
	}
	return groups2
}

// DeepCopy creates a deep copy of Groups
func (groups Groups) DeepCopy() Groups {
	if groups == nil {
		return nil
	}

	groups2 := make(Groups, len(groups))
	for i, grp := range groups {
		groups2[i] = Group{grp.Tag, grp.Attrs.DeepCopy()}
	}
	return groups2
}

// Equal checks that groups and groups2 are equal: the same
// groups in the same order, with equal attributes
func (groups Groups) Equal(groups2 Groups) bool {
	if len(groups) != len(groups2) {
		return false
	}

	for i, grp := range groups {
		grp2 := groups2[i]
		if grp.Tag != grp2.Tag || !grp.Attrs.Equal(grp2.Attrs) {
			return false
		}
	}

	return true
}

// bucket returns index of the group with the specified tag,
// appending an empty group if there is none
func (groups *Groups) bucket(tag Tag) int {
	for i := range *groups {
		if (*groups)[i].Tag == tag {
			return i
		}
	}

	*groups = append(*groups, Group{Tag: tag, Attrs: Attributes{}})
	return len(*groups) - 1
}
