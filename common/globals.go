package common

import "fmt"

const (
	AccountTypeIncoming = "incoming"
	AccountTypeCurrent  = "current"
	AccountTypeEscrow   = "escrow"

	EventTypeCommunityCreate        = "CommunityCreate"
	EventTypeCommunityPaymentCreate = "CommunityPaymentCreate"
	EventTypeCommunityPaymentSent   = "CommunityPaymentSent"
	EventTypeCommunityPaymentTotal  = "CommunityPaymentTotal"
	EventTypeCommunityPaymentRefund = "CommunityPaymentRefund"

	SequenceCommunities = "communities"
)

var EventTypes = []string{
	EventTypeCommunityCreate,
	EventTypeCommunityPaymentCreate,
	EventTypeCommunityPaymentSent,
	EventTypeCommunityPaymentTotal,
	EventTypeCommunityPaymentRefund,
}

// EscrowIdentity is the account holder of the escrow account backing a payment request.
func EscrowIdentity(communityID, paymentID int64) string {
	return fmt.Sprintf("escrow:%d:%d", communityID, paymentID)
}
