// Package naming converts schema function and argument names to Go
// identifiers and back.
//
// Schema names are lower snake case. Words are runs of [a-z0-9] separated by
// a single underscore, and a double underscore separates namespaces:
//
//	pedersen__compress_fields                      -> Pedersen_CompressFields
//	blake2s_to_field                               -> Blake2sToField
//	schnorr__multisig_construct_signature_round_1  -> Schnorr_MultisigConstructSignatureRound_1
//
// Words that start with a digit keep their leading underscore so the
// conversion stays reversible.
package naming

import (
	"go/token"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifiers the generated code itself declares or imports; parameters
// may not shadow them.
var reservedParams = map[string]bool{
	"c":        true,
	"ctx":      true,
	"vals":     true,
	"err":      true,
	"abi":      true,
	"dispatch": true,
	"context":  true,
	"any":      true,
	"bool":     true,
	"byte":     true,
	"uint32":   true,
	"error":    true,
	"nil":      true,
	"true":     true,
	"false":    true,
}

// GoName returns the exported Go identifier for a schema function name.
func GoName(name string) (string, error) {
	namespaces, err := split(name)
	if err != nil {
		return "", err
	}

	title := cases.Title(language.Und)
	parts := make([]string, len(namespaces))
	for i, words := range namespaces {
		var b strings.Builder
		for _, w := range words {
			if isDigit(w[0]) {
				b.WriteByte('_')
				b.WriteString(w)
				continue
			}
			b.WriteString(title.String(w))
		}
		parts[i] = b.String()
	}
	ident := strings.Join(parts, "_")

	back, err := SchemaName(ident)
	if err != nil || back != name {
		return "", &ConversionError{Name: name, Reason: "conversion is not reversible"}
	}
	return ident, nil
}

// SchemaName inverts GoName.
func SchemaName(ident string) (string, error) {
	if ident == "" || !isUpper(ident[0]) {
		return "", &ConversionError{Name: ident, Reason: "not an exported identifier"}
	}

	var namespaces [][]string
	for _, seg := range strings.Split(ident, "_") {
		if seg == "" {
			return "", &ConversionError{Name: ident, Reason: "empty segment"}
		}
		words := splitCamel(seg)
		switch {
		case isUpper(seg[0]):
			namespaces = append(namespaces, words)
		case isDigit(seg[0]) && len(namespaces) > 0:
			last := len(namespaces) - 1
			namespaces[last] = append(namespaces[last], words...)
		default:
			return "", &ConversionError{Name: ident, Reason: "segment '" + seg + "' must start with an upper case letter or digit"}
		}
	}

	parts := make([]string, len(namespaces))
	for i, words := range namespaces {
		parts[i] = strings.Join(words, "_")
	}
	return strings.Join(parts, "__"), nil
}

// ParamName returns the lower camel case Go parameter name for a schema
// argument name. Names that would collide with Go keywords or with
// identifiers used by generated code get a trailing underscore.
func ParamName(name string) (string, error) {
	namespaces, err := split(name)
	if err != nil {
		return "", err
	}
	if len(namespaces) != 1 {
		return "", &ConversionError{Name: name, Reason: "argument names cannot contain '__'"}
	}

	title := cases.Title(language.Und)
	var b strings.Builder
	for i, w := range namespaces[0] {
		switch {
		case i == 0:
			b.WriteString(w)
		case isDigit(w[0]):
			b.WriteByte('_')
			b.WriteString(w)
		default:
			b.WriteString(title.String(w))
		}
	}

	ident := b.String()
	if token.IsKeyword(ident) || reservedParams[ident] {
		ident += "_"
	}
	return ident, nil
}

// split validates a schema name and returns its words grouped by namespace.
func split(name string) ([][]string, error) {
	if name == "" {
		return nil, &ConversionError{Name: name, Reason: "empty name"}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isLower(c) && !isDigit(c) && c != '_' {
			return nil, &ConversionError{Name: name, Reason: "only lower case letters, digits and '_' are allowed"}
		}
	}

	var namespaces [][]string
	for _, ns := range strings.Split(name, "__") {
		words := strings.Split(ns, "_")
		for _, w := range words {
			if w == "" {
				return nil, &ConversionError{Name: name, Reason: "empty word"}
			}
		}
		if !isLower(words[0][0]) {
			return nil, &ConversionError{Name: name, Reason: "each namespace must start with a letter"}
		}
		namespaces = append(namespaces, words)
	}
	return namespaces, nil
}

// splitCamel breaks a segment at upper case letters and lowers each word.
// A leading digit run stays its own word.
func splitCamel(seg string) []string {
	var words []string
	start := 0
	for i := 1; i < len(seg); i++ {
		if isUpper(seg[i]) {
			words = append(words, strings.ToLower(seg[start:i]))
			start = i
		}
	}
	return append(words, strings.ToLower(seg[start:]))
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
