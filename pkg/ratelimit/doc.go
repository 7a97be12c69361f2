// Package ratelimit counts attempts per key in fixed windows.
//
// A window opens on the first attempt for a key and lasts Window. Within it
// the first Quota attempts are admitted and every later one is rejected
// until the window closes. Rejected attempts still count.
//
// Two backends are provided: Memory for a single process, and Redis for
// deployments where several replicas must share one budget.
package ratelimit
