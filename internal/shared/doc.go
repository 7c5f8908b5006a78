// Package shared holds helpers used across packages that belong to no
// single layer.
//
// The testutil subpackage provides:
//
//   - a buffered slog handler for asserting on log output
//   - survey table fixtures built from string rows
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    table := testutil.NewRawTable(testutil.SurveyHeader,
//	        testutil.SurveyRow("2024-01-01 09:00:00", "STU00001", "20", "Male", "Physics", "A", "4", ""))
//	    ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
