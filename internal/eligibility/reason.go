package eligibility

// ReasonCode identifies why a student can or cannot enroll.
type ReasonCode string

const (
	ReasonNoCourse             ReasonCode = "NoCourse"
	ReasonNoActivePeriod       ReasonCode = "NoActivePeriod"
	ReasonPeriodNotStarted     ReasonCode = "PeriodNotStarted"
	ReasonPeriodEnded          ReasonCode = "PeriodEnded"
	ReasonPendingRequestExists ReasonCode = "PendingRequestExists"
	ReasonMissingGrades        ReasonCode = "MissingGrades"
	ReasonInactiveAccount      ReasonCode = "InactiveAccount"
	ReasonHasHolds             ReasonCode = "HasHolds"
	ReasonAlreadyApproved      ReasonCode = "AlreadyApproved"
	ReasonAlreadyRejected      ReasonCode = "AlreadyRejected"
	ReasonEligible             ReasonCode = "Eligible"
)

type reasonText struct {
	message string
	action  string
}

var catalogue = map[ReasonCode]reasonText{
	ReasonNoCourse: {
		message: "Your program could not be determined. Please contact the registrar.",
		action:  "Contact Registrar",
	},
	ReasonNoActivePeriod: {
		message: "There is no active enrollment period for your program.",
		action:  "Enrollment Closed",
	},
	ReasonPeriodNotStarted: {
		message: "The enrollment period has not started yet.",
		action:  "Not Yet Open",
	},
	ReasonPeriodEnded: {
		message: "The enrollment period has ended.",
		action:  "Enrollment Ended",
	},
	ReasonPendingRequestExists: {
		message: "You already have a pending enrollment request for this period.",
		action:  "Request Pending",
	},
	ReasonMissingGrades: {
		message: "Some of your grades from the previous semester are not yet finalized.",
		action:  "Grades Incomplete",
	},
	ReasonInactiveAccount: {
		message: "Your account is not active. Please contact the registrar.",
		action:  "Account Inactive",
	},
	ReasonHasHolds: {
		message: "You have active holds on your account. Please settle them before enrolling.",
		action:  "On Hold",
	},
	ReasonAlreadyApproved: {
		message: "Your enrollment request for this period has been approved.",
		action:  "Already Enrolled",
	},
	ReasonAlreadyRejected: {
		message: "Your enrollment request for this period was rejected. Please contact the registrar.",
		action:  "Request Rejected",
	},
	ReasonEligible: {
		message: "You are eligible to enroll for the next semester.",
		action:  "Enroll Now",
	},
}

const unavailableMessage = "Enrollment status is temporarily unavailable. Please try again later."

// AllReasonCodes lists every reason code in evaluation order, Eligible last.
func AllReasonCodes() []ReasonCode {
	return []ReasonCode{
		ReasonNoCourse,
		ReasonNoActivePeriod,
		ReasonAlreadyApproved,
		ReasonAlreadyRejected,
		ReasonPendingRequestExists,
		ReasonMissingGrades,
		ReasonHasHolds,
		ReasonPeriodNotStarted,
		ReasonPeriodEnded,
		ReasonInactiveAccount,
		ReasonEligible,
	}
}

// Valid reports whether r is a known reason code.
func (r ReasonCode) Valid() bool {
	_, ok := catalogue[r]
	return ok
}

// Describe returns the student-facing message and button label for r.
func Describe(r ReasonCode) (message, actionLabel string) {
	text, ok := catalogue[r]
	if !ok {
		text = catalogue[ReasonNoActivePeriod]
	}
	return text.message, text.action
}

func resultFor(r ReasonCode) Result {
	message, action := Describe(r)
	eligible := r == ReasonEligible
	return Result{
		CanEnroll:      eligible,
		ButtonDisabled: !eligible,
		ReasonCode:     r,
		Message:        message,
		ActionLabel:    action,
	}
}

// Unavailable is the fail-safe result used when the inputs could not be
// loaded. It keeps the enroll button disabled without exposing the cause.
func Unavailable() Result {
	res := resultFor(ReasonNoActivePeriod)
	res.Message = unavailableMessage
	return res
}
