// Package frontmatter separates optional YAML headers from post bodies.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input. Delimiters follow the document's first line
// ending, so CRLF files split too.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	frontmatterEnd := frontmatterStart + idx + len(nl)
	bodyStart := frontmatterStart + idx + len(closeSeq)
	return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}

// Document is a post body with its optional header removed.
type Document struct {
	// Frontmatter is the raw YAML between the delimiters, empty when absent.
	Frontmatter []byte
	Body        []byte
	Fields      map[string]any
}

// String returns the field value for key when it is a string.
func (d Document) String(key string) string {
	v, _ := d.Fields[key].(string)
	return v
}

// Strip removes a leading YAML header from content. An unterminated header or
// one that is not valid YAML is treated as body text, so Strip never fails.
func Strip(content []byte) Document {
	fm, body, had, err := Split(content)
	if err != nil || !had {
		return Document{Body: content, Fields: map[string]any{}}
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return Document{Body: content, Fields: map[string]any{}}
	}
	return Document{Frontmatter: fm, Body: body, Fields: fields}
}
