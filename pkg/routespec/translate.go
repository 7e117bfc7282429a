// Package routespec translates framework route patterns into OpenAPI path
// templates and documented path parameters, resolving parameter types through
// the converter mappings registered on the live document.
package routespec

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-apidocs/pkg/spec"
)

// ConverterLookup resolves a converter name to its OpenAPI type mapping. The
// live document satisfies this.
type ConverterLookup interface {
	ConverterType(name string) (spec.TypeFormat, bool)
}

// Translate converts a route rule into an OpenAPI path template plus its path
// parameters. Two placeholder syntaxes are accepted: angle-bracket rules with
// an optional converter ("/pets/<uuid:pet_id>", "/pets/<pet_id>") and brace
// rules ("/pets/{pet_id}"). Unknown or absent converters fall back to a plain
// string parameter, so the route still documents; the parameter type is just
// undescribed.
func Translate(rule string, converters ConverterLookup) (string, []spec.Parameter, error) {
	var (
		path   strings.Builder
		params []spec.Parameter
	)

	rest := rule
	for rest != "" {
		open := strings.IndexAny(rest, "<{")
		if open < 0 {
			path.WriteString(rest)
			break
		}
		path.WriteString(rest[:open])

		end := closingOffset(rest[open:])
		if end < 0 {
			return "", nil, fmt.Errorf("routespec: unterminated placeholder in rule %q", rule)
		}
		placeholder := rest[open+1 : open+end]
		rest = rest[open+end+1:]

		converter, name := splitPlaceholder(placeholder)
		if name == "" {
			return "", nil, fmt.Errorf("routespec: empty parameter name in rule %q", rule)
		}

		param := spec.Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Type:     "string",
		}
		if converter != "" && converters != nil {
			if tf, ok := converters.ConverterType(converter); ok {
				param.Type = tf.Type
				param.Format = tf.Format
			}
		}
		params = append(params, param)

		path.WriteString("{")
		path.WriteString(name)
		path.WriteString("}")
	}

	return path.String(), params, nil
}

// closingOffset returns the offset of the closer matching the placeholder
// opener at s[0], or -1. Brace placeholders nest: a regex quantifier like
// "{id:[0-9]{4}}" closes at the outer brace.
func closingOffset(s string) int {
	if s[0] == '<' {
		return strings.Index(s, ">")
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitPlaceholder parses "converter(args):name" or plain "name". Converter
// arguments are ignored; only the converter name participates in type
// resolution. Chi-style regex placeholders ("name:regex") keep the leading
// segment as the name.
func splitPlaceholder(placeholder string) (converter, name string) {
	head, tail, found := strings.Cut(placeholder, ":")
	if !found {
		return "", strings.TrimSpace(placeholder)
	}
	head = strings.TrimSpace(head)
	tail = strings.TrimSpace(tail)
	if args := strings.Index(head, "("); args >= 0 {
		head = head[:args]
	}
	if isIdentifier(head) && isIdentifier(tail) {
		return head, tail
	}
	// "name:regex" form: the head names the parameter.
	return "", head
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
