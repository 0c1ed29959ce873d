// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package report turns stored responses into the admin overview and exports.

# Summary

Summarize computes the total count, the latest submission time truncated
to minutes with a humanized age, and value frequency tables:

  - the first three single-choice questions in catalog order
  - every multi-choice question, counting each selected option

Counts are ordered by count descending, then by value.

# Export

WriteCSV and WriteJSON write the full dataset. CSV output starts with a
UTF-8 BOM and joins multi-choice selections with "; ". ExportFilename
returns survey_data_YYYYMMDD.<format>.
*/
package report
