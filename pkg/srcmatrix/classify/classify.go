// Package classify infers primary/foreign key roles from free-text column
// descriptions and resolves the upstream system that owns a key.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
)

// Word boundaries treat any Unicode letter or digit as part of a word, so
// "éPK" or "PKó" do not contain the word PK.
var (
	pkWord = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])PK(?:$|[^\p{L}\p{N}_])`)
	fkWord = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])FK(?:$|[^\p{L}\p{N}_])`)

	pkPhrases = []string{"primary key", "unique identifier", "unique key"}
)

// Rule is one classification predicate. Rules are evaluated in order and the
// first match decides the classification.
type Rule struct {
	Name  string
	Match func(desc string) bool
	Class models.Classification
}

// DefaultRules returns the rule list. With strictFK the foreign key rule
// requires "FK" as a whole word instead of matching "fk" anywhere, so that
// words like "selfknown" are not taken for foreign keys.
func DefaultRules(strictFK bool) []Rule {
	fk := Rule{
		Name:  "fk-substring",
		Match: func(d string) bool { return containsAny(strings.ToLower(d), "fk", "foreign key") },
		Class: models.FK,
	}
	if strictFK {
		fk = Rule{
			Name:  "fk-word",
			Match: func(d string) bool { return fkWord.MatchString(d) || containsAny(strings.ToLower(d), "foreign key") },
			Class: models.FK,
		}
	}

	return []Rule{
		{
			Name:  "empty",
			Match: func(d string) bool { return d == "" },
			Class: models.None,
		},
		{
			Name:  "pk",
			Match: func(d string) bool { return pkWord.MatchString(d) || containsAny(strings.ToLower(d), pkPhrases...) },
			Class: models.PK,
		},
		fk,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Classifier applies an ordered rule list.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules. A nil slice uses DefaultRules(false).
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules(false)
	}
	return &Classifier{rules: rules}
}

// Classify returns the classification of a description. It depends on the
// description only.
func (c *Classifier) Classify(desc string) models.Classification {
	for _, r := range c.rules {
		if r.Match(desc) {
			return r.Class
		}
	}
	return models.None
}

// Counter hands out per-sheet sequence ids, one sequence per classification.
// Use a fresh Counter for every sheet.
type Counter struct {
	n map[models.Classification]int
}

// NewCounter returns a zeroed counter.
func NewCounter() *Counter {
	return &Counter{n: make(map[models.Classification]int)}
}

// Next returns the next id for class (PK01, PK02, FK01, ...), or "" for None.
func (c *Counter) Next(class models.Classification) string {
	if class == models.None {
		return ""
	}
	c.n[class]++
	return fmt.Sprintf("%s%02d", class, c.n[class])
}

// Count returns how many ids were issued for class.
func (c *Counter) Count(class models.Classification) int {
	return c.n[class]
}
