/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Message attributes
 */

package ippcodec

// Attribute represents a single attribute, which consists of
// the Name and the Value. Multi-valued attributes carry ListOf
type Attribute struct {
	Name  string // Attribute name
	Value Value  // Attribute value
}

// MakeAttribute makes Attribute with the given name and value.
// A single-element ListOf is stored as its only element, which
// is how the wire format represents it
func MakeAttribute(name string, value Value) Attribute {
	return Attribute{Name: name, Value: listOfSingle(value)}
}

// MakeAttributeList makes multi-valued Attribute. With a single
// value it is the same as MakeAttribute
func MakeAttributeList(name string, values ...Value) Attribute {
	if len(values) == 1 {
		return MakeAttribute(name, values[0])
	}
	return MakeAttribute(name, ListOf(values))
}

// Values returns attribute values as a slice. For ListOf it
// returns list elements, otherwise a slice of one element
func (a Attribute) Values() []Value {
	if l, ok := a.Value.(ListOf); ok {
		return l
	}
	if a.Value == nil {
		return nil
	}
	return []Value{a.Value}
}

// Equal checks that Attribute is equal to another Attribute
// (i.e., names are the same and values are equal)
func (a Attribute) Equal(a2 Attribute) bool {
	return a.Name == a2.Name && ValueEqual(a.Value, a2.Value)
}

// DeepCopy creates a deep copy of the Attribute
func (a Attribute) DeepCopy() Attribute {
	return Attribute{Name: a.Name, Value: ValueDeepCopy(a.Value)}
}

// fold adds another value to the attribute, turning
// it into ListOf if needed
func (a *Attribute) fold(v Value) {
	l, ok := a.Value.(ListOf)
	if !ok {
		l = ListOf{a.Value}
	}
	a.Value = append(l, v)
}

// Attributes represents a slice of attributes
type Attributes []Attribute

// Add Attribute to Attributes
//
// Attributes are never merged: two attributes added with
// the same name stay two distinct entries
func (attrs *Attributes) Add(attr Attribute) {
	*attrs = append(*attrs, attr)
}

// Get returns the first attribute with the given name
func (attrs Attributes) Get(name string) (Attribute, bool) {
	for _, attr := range attrs {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Clone creates a shallow copy of Attributes
func (attrs Attributes) Clone() Attributes {
	if attrs == nil {
		return nil
	}
	return append(Attributes{}, attrs...)
}

// DeepCopy creates a deep copy of Attributes
func (attrs Attributes) DeepCopy() Attributes {
	if attrs == nil {
		return nil
	}

	attrs2 := make(Attributes, len(attrs))
	for i := range attrs {
		attrs2[i] = attrs[i].DeepCopy()
	}

	return attrs2
}

// Equal checks that attrs and attrs2 are equal, in the
// same order
func (attrs Attributes) Equal(attrs2 Attributes) bool {
	if len(attrs) != len(attrs2) {
		return false
	}

	for i, attr := range attrs {
		if !attr.Equal(attrs2[i]) {
			return false
		}
	}

	return true
}
