// Package dataprocessing holds the numeric and free-text cleaning rules of
// the survey pipeline, plus the reader that loads a survey export.
//
// # Components
//
//   - GradeConverter maps letter grades (A+ .. F) onto the 1.0-5.0 scale.
//   - OutlierPolicy blanks numeric values outside a column's declared range.
//   - Imputer fills gaps by linear interpolation over source row positions.
//   - SpamDetector flags comments to blank by repetition, letter ratio and
//     a list of spam phrases.
//   - Summarizer computes the descriptive figures logged after a run.
//
// None of these types perform I/O and all of them are safe for concurrent
// use once built. ReadTable is the only function here that touches the
// filesystem.
//
// # Usage
//
//	table, err := dataprocessing.ReadTable("data/raw/forms_responses.csv", "", logger)
//	if err != nil {
//	    return err
//	}
//
//	imputer := dataprocessing.NewImputer(2)
//	filled, err := imputer.Interpolate(positions, ages)
package dataprocessing
