// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Part is one segment of message or artifact content. The set of
// implementations is closed: *TextPart, *FilePart and *DataPart.
type Part interface {
	// PartKind returns the "kind" discriminator of the part.
	PartKind() string
	isPart()
}

// TextPart represents a plain text segment.
type TextPart struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

var _ Part = (*TextPart)(nil)

// NewTextPart returns a text part holding text.
func NewTextPart(text string) *TextPart {
	return &TextPart{Text: text}
}

// PartKind implements Part.
func (*TextPart) PartKind() string { return KindText }
func (*TextPart) isPart()          {}

type textPart TextPart

// MarshalJSON implements json.Marshaler.
func (p TextPart) MarshalJSON() ([]byte, error) {
	return marshalWithKind(KindText, textPart(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *TextPart) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "TextPart", KindText); err != nil {
		return err
	}
	if err := requireMembers(data, "TextPart", "text"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*textPart)(p))
}

// DataPart represents a structured JSON object segment.
type DataPart struct {
	Data     map[string]any `json:"data"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

var _ Part = (*DataPart)(nil)

// NewDataPart returns a data part holding data.
func NewDataPart(data map[string]any) *DataPart {
	return &DataPart{Data: data}
}

// PartKind implements Part.
func (*DataPart) PartKind() string { return KindData }
func (*DataPart) isPart()          {}

type dataPart DataPart

// MarshalJSON implements json.Marshaler.
func (p DataPart) MarshalJSON() ([]byte, error) {
	return marshalWithKind(KindData, dataPart(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *DataPart) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "DataPart", KindData); err != nil {
		return err
	}
	if err := requireMembers(data, "DataPart", "data"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*dataPart)(p))
}

// FilePart represents a file segment, either inlined or referenced by URI.
type FilePart struct {
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

var _ Part = (*FilePart)(nil)

// NewFilePart returns a file part wrapping file.
func NewFilePart(file FileContent) *FilePart {
	return &FilePart{File: file}
}

// PartKind implements Part.
func (*FilePart) PartKind() string { return KindFile }
func (*FilePart) isPart()          {}

type filePart FilePart

// MarshalJSON implements json.Marshaler.
func (p FilePart) MarshalJSON() ([]byte, error) {
	if p.File == nil {
		return nil, fmt.Errorf("marshal FilePart: file content is nil")
	}
	return marshalWithKind(KindFile, filePart(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *FilePart) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "FilePart", KindFile); err != nil {
		return err
	}
	if err := requireMembers(data, "FilePart", "file"); err != nil {
		return err
	}

	var raw struct {
		File     jsontext.Value `json:"file"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{Type: "FilePart", Err: err}
	}
	file, err := UnmarshalFileContent(raw.File)
	if err != nil {
		return err
	}

	*p = FilePart{File: file, Metadata: raw.Metadata}
	return nil
}

// UnmarshalPart decodes a single part, selecting the variant by its required "kind" member.
func UnmarshalPart(data []byte) (Part, error) {
	kind, ok, err := discriminator(data, "kind")
	if err != nil {
		return nil, &DecodeError{Type: "Part", Err: err}
	}
	if !ok {
		return nil, &DecodeError{Type: "Part", Err: fmt.Errorf("missing field kind")}
	}

	var p Part
	switch kind {
	case KindText:
		p = new(TextPart)
	case KindFile:
		p = new(FilePart)
	case KindData:
		p = new(DataPart)
	default:
		return nil, &DecodeError{Type: "Part", Err: fmt.Errorf("unknown part kind %q", kind)}
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Parts is an ordered list of parts that decodes each element through UnmarshalPart.
type Parts []Part

// UnmarshalJSON implements json.Unmarshaler.
func (ps *Parts) UnmarshalJSON(data []byte) error {
	if k := jsontext.Value(data).Kind(); k != '[' {
		return &DecodeError{Type: "Parts", Err: fmt.Errorf("expected JSON array, got %s", kindName(k))}
	}

	var raws []jsontext.Value
	if err := json.Unmarshal(data, &raws); err != nil {
		return &DecodeError{Type: "Parts", Err: err}
	}

	out := make(Parts, 0, len(raws))
	for i, raw := range raws {
		p, err := UnmarshalPart(raw)
		if err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
		out = append(out, p)
	}

	*ps = out
	return nil
}

// Texts returns the text of every TextPart, in order.
func (ps Parts) Texts() []string {
	var texts []string
	for _, p := range ps {
		if tp, ok := p.(*TextPart); ok {
			texts = append(texts, tp.Text)
		}
	}
	return texts
}

// FileContent is the payload of a FilePart: *FileWithBytes or *FileWithURI.
type FileContent interface {
	// FileName returns the optional file name.
	FileName() string
	// MIMEType returns the optional media type.
	MIMEType() string
	isFileContent()
}

// FileWithBytes carries the file inline as base64 encoded bytes.
type FileWithBytes struct {
	Bytes    string `json:"bytes"`
	Name     string `json:"name,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
}

// FileName implements FileContent.
func (f *FileWithBytes) FileName() string { return f.Name }

// MIMEType implements FileContent.
func (f *FileWithBytes) MIMEType() string { return f.MimeType }

func (*FileWithBytes) isFileContent() {}

// FileWithURI references the file by URI.
type FileWithURI struct {
	URI      string `json:"uri"`
	Name     string `json:"name,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
}

// FileName implements FileContent.
func (f *FileWithURI) FileName() string { return f.Name }

// MIMEType implements FileContent.
func (f *FileWithURI) MIMEType() string { return f.MimeType }

func (*FileWithURI) isFileContent() {}

// UnmarshalFileContent decodes a file payload. The variant is chosen by
// structure: an object with "bytes" is a *FileWithBytes, otherwise an object
// with "uri" is a *FileWithURI. Anything else is a decode error.
func UnmarshalFileContent(data []byte) (FileContent, error) {
	if k := jsontext.Value(data).Kind(); k != '{' {
		return nil, &DecodeError{Type: "FileContent", Err: fmt.Errorf("expected JSON object, got %s", kindName(k))}
	}

	var members map[string]jsontext.Value
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, &DecodeError{Type: "FileContent", Err: err}
	}

	switch {
	case members["bytes"] != nil && members["bytes"].Kind() == '"':
		var f FileWithBytes
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, &DecodeError{Type: "FileWithBytes", Err: err}
		}
		return &f, nil
	case members["uri"] != nil && members["uri"].Kind() == '"':
		var f FileWithURI
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, &DecodeError{Type: "FileWithURI", Err: err}
		}
		return &f, nil
	default:
		return nil, &DecodeError{Type: "FileContent", Err: fmt.Errorf("object has neither bytes nor uri")}
	}
}

// validatePart checks the media type of file content when one is declared.
func validatePart(p Part) error {
	switch p := p.(type) {
	case nil:
		return invalidf("part cannot be nil")
	case *FilePart:
		if p.File == nil {
			return invalidf("file part must carry file content")
		}
		if mt := p.File.MIMEType(); mt != "" {
			if err := ValidateMediaType(mt); err != nil {
				return fmt.Errorf("file %q: %w", p.File.FileName(), err)
			}
		}
	}
	return nil
}
