package sched

// Entry is one cell of the final timetable: a course placed at a slot for
// one particular class. A multi-class course fans out into one Entry per
// class, all sharing the slot. Entries are created only by the extractor.
type Entry struct {
	CourseID int      `json:"courseId"`
	SlotID   int      `json:"slotId"`
	ClassID  string   `json:"classId"`
	Teachers []string `json:"teachers"`
	Subject  string   `json:"subject"`
	Day      int      `json:"day"`
	Period   int      `json:"period"`
}
