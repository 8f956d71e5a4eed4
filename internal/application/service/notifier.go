package service

import "time"

// Notifier dispatches fire-and-forget notifications. Failures are logged by
// callers and never roll back the state transition that triggered them.
type Notifier interface {
	SendAgreementEmail(toEmail, leadName, reference string) error
	SendKickoffAssignedEmail(toEmail, pmName, leadName string, expectedStart time.Time) error
	SendProjectCreatedEmail(toEmail, pmName, projectRef string) error
}
