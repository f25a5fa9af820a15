// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"slices"
)

// cloneValue copies the JSON object and array values reachable from v.
// Other values are returned as is.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		if v == nil {
			return v
		}
		c := make([]any, len(v))
		for i, e := range v {
			c[i] = cloneValue(e)
		}
		return c
	}
	return v
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func clonePart(p Part) Part {
	switch p := p.(type) {
	case *TextPart:
		if p == nil {
			return p
		}
		c := *p
		c.Metadata = cloneMap(p.Metadata)
		return &c
	case *DataPart:
		if p == nil {
			return p
		}
		c := *p
		c.Data = cloneMap(p.Data)
		c.Metadata = cloneMap(p.Metadata)
		return &c
	case *FilePart:
		if p == nil {
			return p
		}
		c := *p
		c.Metadata = cloneMap(p.Metadata)
		switch f := p.File.(type) {
		case *FileWithBytes:
			if f != nil {
				fc := *f
				c.File = &fc
			}
		case *FileWithURI:
			if f != nil {
				fc := *f
				c.File = &fc
			}
		}
		return &c
	}
	return p
}

func (ps Parts) clone() Parts {
	if ps == nil {
		return nil
	}
	c := make(Parts, len(ps))
	for i, p := range ps {
		c[i] = clonePart(p)
	}
	return c
}

// Clone returns a deep copy of m.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	c := *m
	c.Parts = m.Parts.clone()
	c.ReferenceTaskIDs = slices.Clone(m.ReferenceTaskIDs)
	c.Extensions = slices.Clone(m.Extensions)
	c.Metadata = cloneMap(m.Metadata)
	return &c
}

func (s TaskStatus) clone() TaskStatus {
	s.Message = s.Message.Clone()
	return s
}

func (a *Artifact) clone() *Artifact {
	c := *a
	c.Parts = a.Parts.clone()
	c.Extensions = slices.Clone(a.Extensions)
	c.Metadata = cloneMap(a.Metadata)
	return &c
}

func (o *ErrorObject) clone() *ErrorObject {
	if o == nil {
		return nil
	}
	c := *o
	c.Data = cloneValue(o.Data)
	return &c
}

// Clone returns a deep copy of t. JSON object and array values held in
// metadata, results and data parts are copied too; other dynamic values are
// shared.
func (t *Task) Clone() *Task {
	c := *t
	c.Status = t.Status.clone()
	c.Metadata = cloneMap(t.Metadata)
	c.Result = cloneValue(t.Result)
	c.Error = t.Error.clone()
	if t.Artifacts != nil {
		c.Artifacts = make([]*Artifact, len(t.Artifacts))
		for i, a := range t.Artifacts {
			if a != nil {
				c.Artifacts[i] = a.clone()
			}
		}
	}
	if t.History != nil {
		c.History = make([]*Message, len(t.History))
		for i, m := range t.History {
			c.History[i] = m.Clone()
		}
	}
	if t.StatusHistory != nil {
		c.StatusHistory = make([]TaskStatus, len(t.StatusHistory))
		for i, s := range t.StatusHistory {
			c.StatusHistory[i] = s.clone()
		}
	}
	return &c
}
