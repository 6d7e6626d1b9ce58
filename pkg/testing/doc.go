// Package testing provides host fakes and view tree helpers for testing
// code built on Piet.
//
// # Quick Start
//
// Build a host environment, bind a frame and make assertions on the
// resulting views:
//
//	func TestCard(t *testing.T) {
//	    env := piettest.NewEnv()
//	    fc := env.FrameContext(t, frame)
//
//	    // bind adapters or a frame adapter with fc or env.Providers()
//
//	    title := piettest.Find(root, piettest.ByText("Title")).First()
//	    piettest.Tap(root, piettest.ByContentDescription("Open"))
//	    if got := env.Actions.Names(model.ActionTypeClick); len(got) != 1 {
//	        t.Errorf("expected one click, got %v", got)
//	    }
//	}
//
// # Asynchronous Assets
//
// FakeAssets queues image requests until DeliverImages is called, so tests
// can observe placeholder state and stale deliveries:
//
//	env.Assets.DeliverImages()
//
// # Snapshot Testing
//
// Capture and compare view tree snapshots:
//
//	snapshot := piettest.CaptureSnapshot(root)
//	snapshot.MatchesFile(t, "testdata/card.snapshot.json")
//
// Update snapshots with:
//
//	PIET_UPDATE_SNAPSHOTS=1 go test ./...
package testing
