package catalog

import "fmt"

// DataError marks a malformed course row. The row is rejected and reported;
// normalization continues with the remaining rows.
type DataError struct {
	CourseID int
	Reason   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("course %v rejected: %v", e.CourseID, e.Reason)
}
