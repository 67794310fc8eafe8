package workflow

import (
	"strings"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

// Completeness reports, per section, whether a review has enough content
// for that section to count toward submission. A collection section is
// complete when it holds at least one record; the overview is complete
// when its identity fields are filled in. Nil collections count as empty.
func Completeness(r *model.SolutionReview) map[model.Section]bool {
	out := make(map[model.Section]bool, len(model.WizardSections))
	for _, s := range model.WizardSections {
		if s == model.SectionSolutionOverview {
			out[s] = overviewComplete(r.Overview)
			continue
		}
		out[s] = r.SectionLen(s) > 0
	}
	return out
}

// ReadyToSubmit is true only when every section is complete. This gates
// the SUBMIT confirmation; it is advisory on the client and enforced again
// by the service before the transition is persisted.
func ReadyToSubmit(r *model.SolutionReview) bool {
	for _, complete := range Completeness(r) {
		if !complete {
			return false
		}
	}
	return true
}

// MissingSections lists the incomplete sections in wizard order, for
// error messages and the submit checklist.
func MissingSections(r *model.SolutionReview) []model.Section {
	complete := Completeness(r)
	var missing []model.Section
	for _, s := range model.WizardSections {
		if !complete[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

func overviewComplete(o model.SolutionOverview) bool {
	return strings.TrimSpace(o.SolutionName) != "" &&
		strings.TrimSpace(o.ReviewType) != "" &&
		strings.TrimSpace(o.BusinessUnit) != ""
}
