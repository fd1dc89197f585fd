// Package services contains domain services implementing business logic that
// spans multiple aggregates.
//
// The package provides the AssignmentScheduler service, which routes freshly
// created orders to kitchen staff using a least-recently-assigned policy and
// a conditional write to keep concurrent creations from picking the same
// staff member.
package services
