// Package service implements the business rules of the planner. One generic
// Resource owns the create/list/get/update/delete lifecycle of an entity and
// is instantiated for users, plans, task lists and tasks, each adding its own
// uniqueness, hashing or scoping rules.
package service
