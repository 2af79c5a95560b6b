package services

import (
	"sort"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// formOrder is the category order used to number CLDR plural forms.
var formOrder = []plural.Form{plural.Zero, plural.One, plural.Two, plural.Few, plural.Many, plural.Other}

// PluralResolver maps counts to plural category indices per language.
// Languages without a custom rule use the CLDR cardinal rules, numbered
// zero, one, two, few, many, other over the forms the language uses.
type PluralResolver struct {
	mu    sync.RWMutex
	rules map[string]domain.PluralRule
	forms map[string][]plural.Form
}

// NewPluralResolver creates a resolver with no custom rules.
func NewPluralResolver() *PluralResolver {
	return &PluralResolver{
		rules: make(map[string]domain.PluralRule),
		forms: make(map[string][]plural.Form),
	}
}

// AddRule overrides the rule for lng (a base language such as "sl").
func (r *PluralResolver) AddRule(lng string, rule domain.PluralRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[baseLanguage(lng)] = rule
}

// Index returns the plural category index of count in lng.
func (r *PluralResolver) Index(lng string, count int) int {
	if count < 0 {
		count = -count
	}
	base := baseLanguage(lng)

	r.mu.RLock()
	rule, ok := r.rules[base]
	r.mu.RUnlock()
	if ok {
		return rule.Plurals(count)
	}

	forms := r.cldrForms(base)
	form := plural.Cardinal.MatchPlural(language.Make(base), count, 0, 0, 0, 0)
	for i, f := range forms {
		if f == form {
			return i
		}
	}
	return len(forms) - 1
}

// Categories returns how many plural categories lng has.
func (r *PluralResolver) Categories(lng string) int {
	base := baseLanguage(lng)

	r.mu.RLock()
	rule, ok := r.rules[base]
	r.mu.RUnlock()
	if ok {
		return len(rule.Numbers)
	}
	return len(r.cldrForms(base))
}

// cldrForms lists the integer plural forms of a language in category order.
// The forms are discovered by sampling counts, since the CLDR tables are
// not exported.
func (r *PluralResolver) cldrForms(base string) []plural.Form {
	r.mu.RLock()
	forms, ok := r.forms[base]
	r.mu.RUnlock()
	if ok {
		return forms
	}

	tag := language.Make(base)
	seen := make(map[plural.Form]bool)
	for n := 0; n <= 1000; n++ {
		seen[plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)] = true
	}
	forms = make([]plural.Form, 0, len(seen))
	for f := range seen {
		forms = append(forms, f)
	}
	rank := make(map[plural.Form]int, len(formOrder))
	for i, f := range formOrder {
		rank[f] = i
	}
	sort.Slice(forms, func(i, j int) bool { return rank[forms[i]] < rank[forms[j]] })

	r.mu.Lock()
	r.forms[base] = forms
	r.mu.Unlock()
	return forms
}

// baseLanguage returns the language subtag of lng ("sl-SI" → "sl").
func baseLanguage(lng string) string {
	tag, err := language.Parse(lng)
	if err != nil {
		return lng
	}
	base, _ := tag.Base()
	return base.String()
}
