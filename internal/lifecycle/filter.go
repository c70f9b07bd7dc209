package lifecycle

import (
	"strings"

	"github.com/samber/lo"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

// Match reports whether rec satisfies every predicate of f. A record
// without a readable withdrawal date never matches. A zero bound leaves
// that side of the range open.
func Match(rec model.Record, f model.RecordsFilter) bool {
	if !lo.Contains(f.Statuses, rec.Status) {
		return false
	}

	tag := strings.TrimSpace(rec.EquipmentTag)
	if !lo.ContainsBy(f.Tags, func(t string) bool { return strings.TrimSpace(t) == tag }) {
		return false
	}

	day, ok := rec.WithdrawalDate.Time()
	if !ok {
		return false
	}
	if from, ok := f.From.Time(); ok && day.Before(from) {
		return false
	}
	if to, ok := f.To.Time(); ok && day.After(to) {
		return false
	}
	return true
}

func Filter(records []model.Record, f model.RecordsFilter) []model.Record {
	return lo.Filter(records, func(r model.Record, _ int) bool { return Match(r, f) })
}

// Tags lists the distinct equipment tags in first-seen order.
func Tags(records []model.Record) []string {
	return lo.Uniq(lo.Map(records, func(r model.Record, _ int) string {
		return strings.TrimSpace(r.EquipmentTag)
	}))
}

// Report groups records per status in lifecycle order.
func (c *Controller) Report(records []model.Record) model.StatusReport {
	byStatus := lo.GroupBy(records, func(r model.Record) model.Status { return r.Status })

	groups := make([]model.StatusGroup, 0, len(model.AllStatuses()))
	for _, s := range model.AllStatuses() {
		groups = append(groups, model.StatusGroup{
			Status: s,
			Items:  lo.Map(byStatus[s], func(r model.Record, _ int) model.ComponentView { return c.View(r) }),
		})
	}

	return model.StatusReport{Generated: c.Today(), Groups: groups}
}
