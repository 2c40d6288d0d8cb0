// Package analytics delivers gameplay telemetry on a fire-and-forget basis.
//
// The analytics package implements:
//   - The three wire events: game_start, level_complete, game_complete
//   - A bounded submission queue with an oldest-drop eviction policy
//   - A single background delivery worker with one attempt per event
//   - Atomic counters for observing delivery health
//
// Design:
//
// Gameplay must never wait on telemetry. Submit enqueues and returns
// immediately no matter what the network is doing; when the queue is full
// the oldest undelivered event is evicted to make room. Delivery failures
// and drops surface only through Stats and the log, never to the caller.
//
// Usage:
//
//	d := analytics.New(analytics.Config{Endpoint: url, QueueDepth: 64})
//	defer d.Close()
//
//	d.Submit(analytics.GameStart(playerID, time.Now()))
//
// A dispatcher constructed without an endpoint is valid and counts every
// submission as a drop, which keeps call sites free of nil checks in
// deployments that do not collect telemetry.
package analytics
