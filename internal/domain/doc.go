// Package domain contains the core business entities of the planner: users,
// plans, task lists and tasks, together with the closed task enumerations and
// the validation errors shared across layers. It is independent of any
// specific storage or delivery mechanism.
package domain
