// Package testing provides notification recording and golden-file journals
// for tests of code built on observe collections.
//
// # Quick Start
//
// Record every notification a view delivers, then assert on the entries:
//
//	func TestTodoList(t *testing.T) {
//	    rec, err := observetest.NewRecorder(view)
//	    require.NoError(t, err)
//	    defer rec.Close()
//
//	    list.Append("buy milk")
//
//	    entries := rec.Entries()
//	    require.Len(t, entries, 3) // add, Count, Item[]
//	}
//
// # Golden Journals
//
// Compare the recorded journal against a file:
//
//	rec.Journal().MatchesFile(t, "testdata/todo_list.journal.json")
//
// Update golden files with:
//
//	OBSERVE_UPDATE_SNAPSHOTS=1 go test ./...
//
// Golden files omit the collection ID, which differs on every run.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import observetest "github.com/go-drift/observe/pkg/testing"
package testing
