package cancellation

import "hotel-booking/internal/pkg/errs"

var (
	ErrInvalidStatus         = errs.Validation("cancellation status must be one of requested, approved, rejected, refund_pending, refund_processed")
	ErrInvalidDecision       = errs.Validation("approval status must be approved or rejected")
	ErrInvalidRefundStatus   = errs.Validation("refund status must be one of pending, processed, failed")
	ErrReasonTooLong         = errs.Validation("cancellation reason must be at most 500 characters")
	ErrInvalidRefundMethod   = errs.Validation("refund method is required")
	ErrNoCoveringPolicy      = errs.DomainRule("no cancellation policy covers the evaluation date; cancellation cannot be priced")
	ErrInvalidTransition     = errs.DomainRule("invalid cancellation status transition")
	ErrNotApproved           = errs.DomainRule("cancellation request is not approved")
	ErrRefundAlreadyExists   = errs.DomainRule("refund has already been processed for this cancellation request")
	ErrInvalidRefundUpdate   = errs.DomainRule("invalid refund status transition")
	ErrRoomsAlreadyRequested = errs.DomainRule("one or more rooms already have an open cancellation request")
	ErrRequestNotFound       = errs.NotFound("cancellation request not found")
	ErrRefundNotFound        = errs.NotFound("refund not found")
	ErrRefundMethodNotFound  = errs.NotFound("refund method not found")
)
