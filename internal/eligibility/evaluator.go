package eligibility

type rule struct {
	reason ReasonCode
	fails  func(Input) bool
}

// rules are checked top to bottom. The order decides which message a student
// sees when several conditions fail at once, so it must not be rearranged.
var rules = []rule{
	{ReasonNoCourse, func(in Input) bool {
		return in.CourseID == nil || *in.CourseID == ""
	}},
	{ReasonNoActivePeriod, func(in Input) bool {
		return in.ActivePeriod == nil || in.ActivePeriod.Status != PeriodActive
	}},
	{ReasonAlreadyApproved, func(in Input) bool {
		return requestIs(in, RequestApproved)
	}},
	{ReasonAlreadyRejected, func(in Input) bool {
		return requestIs(in, RequestRejected)
	}},
	{ReasonPendingRequestExists, func(in Input) bool {
		return in.HasPendingRequest || requestIs(in, RequestPending)
	}},
	{ReasonMissingGrades, func(in Input) bool {
		return in.MissingFinalGradeCount > 0
	}},
	{ReasonHasHolds, func(in Input) bool {
		return in.ActiveHoldCount > 0
	}},
	{ReasonPeriodNotStarted, func(in Input) bool {
		return in.ActivePeriod != nil && in.Now.Before(in.ActivePeriod.StartAt)
	}},
	{ReasonPeriodEnded, func(in Input) bool {
		return in.ActivePeriod != nil && in.Now.After(in.ActivePeriod.EndAt)
	}},
	{ReasonInactiveAccount, func(in Input) bool {
		return in.StudentStatus != StudentActive && in.StudentStatus != StudentEnrolled
	}},
}

// Evaluate returns the decision for in. The first failing rule wins; when none
// fails the student is Eligible. Period bounds are inclusive.
func Evaluate(in Input) Result {
	for _, r := range rules {
		if r.fails(in) {
			return resultFor(r.reason)
		}
	}
	return resultFor(ReasonEligible)
}

func requestIs(in Input, status RequestStatus) bool {
	return in.ExistingRequestStatus != nil && *in.ExistingRequestStatus == status
}
