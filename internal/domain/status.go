package domain

var pickupTransitions = map[PickupStatus][]PickupStatus{
	PickupPending:   {PickupAssigned, PickupCancelled},
	PickupAssigned:  {PickupPending, PickupCompleted, PickupCancelled},
	PickupCompleted: {},
	PickupCancelled: {},
}

func (s PickupStatus) Valid() bool {
	_, ok := pickupTransitions[s]
	return ok
}

func (s PickupStatus) IsTerminal() bool {
	return s == PickupCompleted || s == PickupCancelled
}

// CanTransitionTo reports whether a pickup in status s may move to next.
// Re-applying the current status is always allowed.
func (s PickupStatus) CanTransitionTo(next PickupStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, allowed := range pickupTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintPending:    {ComplaintInProgress, ComplaintResolved, ComplaintClosed},
	ComplaintInProgress: {ComplaintResolved, ComplaintClosed},
	ComplaintResolved:   {ComplaintClosed},
	ComplaintClosed:     {},
}

func (s ComplaintStatus) Valid() bool {
	_, ok := complaintTransitions[s]
	return ok
}

func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, allowed := range complaintTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (w WasteType) Valid() bool {
	switch w {
	case WasteGeneral, WasteRecyclable, WasteOrganic, WasteElectronic, WasteHazardous:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (t ComplaintType) Valid() bool {
	switch t {
	case ComplaintMissedPickup, ComplaintLatePickup, ComplaintIncompleteCollection,
		ComplaintDriverBehavior, ComplaintBillingIssue, ComplaintOther:
		return true
	}
	return false
}
