// Copyright (c) 2025 CondeSun
// SPDX-License-Identifier: BSD-2-Clause

/*
Package reliability provides submission tracking for asynchronous delivery.

When a request is submitted in fire-and-continue mode, the outcome is not
available to the caller at the call site. The tracker records the life
cycle of each submission so the result can be observed later.

# Submission States

	pending   -> accepted, delivery not started
	sending   -> request is on the wire
	delivered -> endpoint answered 2xx
	failed    -> transport or HTTP error

# Usage

	tracker := reliability.NewSubmissionTracker(24 * time.Hour)

	tracker.Track(id)
	tracker.MarkSending(id)
	tracker.RecordDelivery(id, 200, receiptBody)

	// Observe from another goroutine
	sub, err := tracker.Wait(ctx, id)

Finished submissions are retained for the configured window and then
dropped. There is no retry scheduling; a failed submission stays failed.
*/
package reliability
