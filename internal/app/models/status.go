package models

// TransactionStatus is the linear progression a charge slip moves through.
type TransactionStatus string

const (
	TransactionForBilling       TransactionStatus = "For Billing"
	TransactionBillingConfirmed TransactionStatus = "Billing Confirmed"
	TransactionPaymentVerified  TransactionStatus = "Payment Verified"
)

var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionForBilling:       {TransactionBillingConfirmed},
	TransactionBillingConfirmed: {TransactionPaymentVerified, TransactionForBilling},
	TransactionPaymentVerified:  {},
}

func (s TransactionStatus) CanTransition(to TransactionStatus) bool {
	for _, next := range transactionTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Voidable reports whether service lines may still be removed from a
// transaction in this status.
func (s TransactionStatus) Voidable() bool {
	return s == TransactionForBilling
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPaid          PaymentStatus = "Paid"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentCancelled     PaymentStatus = "Cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:       {PaymentPaid, PaymentPartiallyPaid, PaymentCancelled},
	PaymentPartiallyPaid: {PaymentPaid, PaymentCancelled},
	PaymentPaid:          {},
	PaymentCancelled:     {},
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PromissoryStatus string

const (
	PromissoryPending  PromissoryStatus = "Pending"
	PromissoryApproved PromissoryStatus = "Approved"
	PromissoryRejected PromissoryStatus = "Rejected"
	PromissorySettled  PromissoryStatus = "Settled"
	PromissoryOverdue  PromissoryStatus = "Overdue"
)

// Approved and Rejected may correct each other before settlement; Settled is
// reached only through payment verification and is terminal.
var promissoryTransitions = map[PromissoryStatus][]PromissoryStatus{
	PromissoryPending:  {PromissoryApproved, PromissoryRejected},
	PromissoryApproved: {PromissoryRejected, PromissorySettled, PromissoryOverdue},
	PromissoryRejected: {PromissoryApproved},
	PromissoryOverdue:  {PromissorySettled},
	PromissorySettled:  {},
}

func (s PromissoryStatus) CanTransition(to PromissoryStatus) bool {
	for _, next := range promissoryTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a promissory in this status still blocks a new
// submission for the same admission.
func (s PromissoryStatus) Terminal() bool {
	return s == PromissorySettled || s == PromissoryRejected
}

type VoidReason string

const (
	VoidReasonWrongPunch   VoidReason = "Wrong punch"
	VoidReasonChangeOfMind VoidReason = "Change of mind"
)

func (r VoidReason) Valid() bool {
	return r == VoidReasonWrongPunch || r == VoidReasonChangeOfMind
}
