package events

const (
	EventTypeMailReceived    = "mail.received"
	EventTypeApprovalDecided = "approval.decided"

	ApprovalKindReimbursement = "reimbursement"
	ApprovalKindLeave         = "leave"
)

type MailReceivedEvent struct {
	Envelope
	MailID     int64  `json:"mail_id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Subject    string `json:"subject"`
}

func NewMailReceivedEvent(mailID, senderID, receiverID int64, subject string) *MailReceivedEvent {
	return &MailReceivedEvent{
		Envelope:   newEnvelope(EventTypeMailReceived),
		MailID:     mailID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Subject:    subject,
	}
}

// ApprovalDecidedEvent is emitted once a pending request is approved or rejected.
type ApprovalDecidedEvent struct {
	Envelope
	Kind        string `json:"kind"`
	RecordID    int64  `json:"record_id"`
	RequesterID int64  `json:"requester_id"`
	ApproverID  int64  `json:"approver_id"`
	Status      string `json:"status"`
}

func NewApprovalDecidedEvent(kind string, recordID, requesterID, approverID int64, status string) *ApprovalDecidedEvent {
	return &ApprovalDecidedEvent{
		Envelope:    newEnvelope(EventTypeApprovalDecided),
		Kind:        kind,
		RecordID:    recordID,
		RequesterID: requesterID,
		ApproverID:  approverID,
		Status:      status,
	}
}
