// Package audit provides the immutable record written for every accepted order
// status change.
package audit
