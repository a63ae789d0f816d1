package typecheck

import (
	"regexp"

	"github.com/openkraft/typeguard/internal/domain"
)

type fieldRule struct {
	tag      domain.Tag
	patterns []*regexp.Regexp
}

// fieldRules are checked in order; the first group with a matching pattern wins.
var fieldRules = []fieldRule{
	{domain.TagInteger, compileAll(
		`.*_id`, `.*Id`, `.*ID`,
		`.*_count`, `.*_total`, `.*_num`,
		`id`, `count`, `total`, `num`,
	)},
	{domain.TagDatetime, compileAll(
		`.*_at`, `.*_time`, `.*timestamp.*`,
		`created`, `updated`, `deleted`,
		`.*_date`,
	)},
	{domain.TagNumber, compileAll(
		`.*amount.*`, `.*price.*`, `.*cost.*`,
		`.*_rate`, `.*_percent.*`, `.*_ratio.*`,
	)},
	{domain.TagBoolean, compileAll(
		`is_.*`, `has_.*`, `can_.*`,
		`.*_enabled`, `.*_active`, `.*_flag`,
	)},
}

// compileAll anchors each expression to the whole name, case-insensitively.
func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)^(?:` + e + `)$`)
	}
	return out
}

// Infer guesses the expected type of a field from its name. It only ever
// returns integer, datetime, number or boolean.
func Infer(field string) (domain.Tag, bool) {
	for _, rule := range fieldRules {
		for _, re := range rule.patterns {
			if re.MatchString(field) {
				return rule.tag, true
			}
		}
	}
	return "", false
}
