// Package level fetches stage descriptors from the level data service.
//
// The level package implements:
//   - Stage-keyed HTTP fetches with a hard per-request timeout
//   - Classified fetch failures (not found, server error, timeout, network)
//   - Optional in-memory caching of immutable stage content
//   - A startup connectivity probe
//
// Wire Contract:
//
// The service answers GET /level/{stage_number} with a JSON envelope:
//
//	{
//	  "success": true,
//	  "data": {
//	    "stage_number": 1,
//	    "layout": "#####\n#S.E#\n#####",
//	    "width": 5, "height": 3,
//	    "start_x": 1, "start_y": 1,
//	    "end_x": 3, "end_y": 1
//	  }
//	}
//
// Failures answer with a non-200 status and an {"error": "..."} body; the
// client classifies them by status alone. It makes exactly one attempt per
// Fetch call and never retries; retry policy belongs to the caller.
//
// Error Handling:
//
// Every failure wraps one of the package sentinel errors, so callers branch
// with errors.Is:
//
//	desc, err := client.Fetch(ctx, 4)
//	if errors.Is(err, level.ErrNotFound) {
//		// the run is over, there is no stage 4
//	}
package level
