// Package common holds enums shared between configuration and processing
// packages, so neither has to import the other just for a type.
package common

//go:generate go tool go-enum --marshal --names

// Specification of requested output layout.
// ENUM(table, yaml, template)
type ReportFmt int

