// Package service implements the thin orchestration layer between callers
// and the DAOs.
//
// DepartmentService and SellerService decide between insert and update
// (SaveOrUpdate is the only place that decision is made) and pass DAO
// errors through unchanged. Change notification is the caller's concern:
// services hold no state beyond their DAO and logger.
package service
