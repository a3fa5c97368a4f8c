package subscriptions

// DeriveStatus maps a Stripe subscription snapshot to the local status.
// Terminal provider statuses win over the cancel-at-period-end flag.
func DeriveStatus(stripeStatus string, cancelAtPeriodEnd bool) Status {
	switch stripeStatus {
	case "canceled", "incomplete_expired":
		return StatusInactive
	case "past_due":
		return StatusPastDue
	}
	if cancelAtPeriodEnd {
		return StatusCancelling
	}
	return StatusActive
}

// PlanDurationFromInterval maps a Stripe recurring interval to the local
// plan duration. Anything that is not "year" bills monthly.
func PlanDurationFromInterval(interval string) PlanDuration {
	if interval == "year" {
		return DurationYearly
	}
	return DurationMonthly
}
