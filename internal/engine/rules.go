package engine

// bypassRule exempts an item from strike evaluation for this run.
type bypassRule struct {
	status Status
	reason string
	match  func(Item, Thresholds) bool
}

// bypassRules are evaluated in order; the first match wins.
var bypassRules = []bypassRule{
	{
		status: StatusPending,
		reason: "no remaining time estimate",
		match: func(item Item, t Thresholds) bool {
			return item.RemainingMS == 0 && !t.AggressiveStrikes
		},
	},
	{
		status: StatusIgnored,
		reason: "size at or above threshold",
		match: func(item Item, t Thresholds) bool {
			return item.Size >= t.SizeBytes
		},
	},
}

func matchBypass(item Item, t Thresholds) (bypassRule, bool) {
	for _, rule := range bypassRules {
		if rule.match(item, t) {
			return rule, true
		}
	}
	return bypassRule{}, false
}

// strikeEligible reports whether the item is slow enough to earn a strike.
func strikeEligible(item Item, t Thresholds) bool {
	if item.RemainingMS == 0 {
		return t.AggressiveStrikes
	}
	return item.RemainingMS >= t.TimeMS
}
