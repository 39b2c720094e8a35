// Package forms holds the static definitions of the prescribed insolvency
// forms the pipeline understands, and the registry that resolves the many
// spellings of a form type to a single definition.
package forms

import (
	"regexp"
	"sort"
	"strings"
)

// Registry resolves form-type strings to form definitions. The registry is
// built once and treated as read-only afterwards.
type Registry struct {
	definitions map[string]*FormDefinition
	aliases     map[string]string
}

// NewRegistry builds the registry with the built-in Form 31 and Form 47
// definitions.
func NewRegistry() *Registry {
	r := &Registry{
		definitions: make(map[string]*FormDefinition),
		aliases:     make(map[string]string),
	}

	r.register(form31Definition(), "proof of claim")
	r.register(form47Definition(), "consumer proposal")

	return r
}

func (r *Registry) register(def *FormDefinition, aliases ...string) {
	r.definitions[def.FormNumber] = def
	for _, alias := range aliases {
		r.aliases[alias] = def.FormNumber
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9 ]+`)

// NormalizeFormType reduces a form-type spelling to its canonical form
// number. "Form-31", "form31", "31" and "Proof of Claim" all normalize to
// "31". Unknown spellings normalize to a cleaned-up lowercase string that
// will not match any definition.
func NormalizeFormType(formType string) string {
	s := strings.ToLower(strings.TrimSpace(formType))
	s = nonAlphanumeric.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimPrefix(s, "form ")
	s = strings.TrimPrefix(s, "form")
	s = strings.TrimSpace(s)
	return s
}

// Lookup resolves a form-type string to its definition. The boolean reports
// whether the form type is supported.
func (r *Registry) Lookup(formType string) (*FormDefinition, bool) {
	key := NormalizeFormType(formType)
	if number, ok := r.aliases[key]; ok {
		key = number
	}
	def, ok := r.definitions[key]
	return def, ok
}

// FormNumbers returns the registered form numbers in ascending order.
func (r *Registry) FormNumbers() []string {
	numbers := make([]string, 0, len(r.definitions))
	for number := range r.definitions {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}

// Definitions returns the registered definitions ordered by form number.
func (r *Registry) Definitions() []*FormDefinition {
	defs := make([]*FormDefinition, 0, len(r.definitions))
	for _, number := range r.FormNumbers() {
		defs = append(defs, r.definitions[number])
	}
	return defs
}
