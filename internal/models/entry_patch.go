package models

// EntryPatch is a partial update to a journal entry. Nil fields are
// left untouched.
type EntryPatch struct {
	Title      *string      `json:"title,omitempty"`
	Content    *string      `json:"content,omitempty"`
	Date       *string      `json:"date,omitempty"`
	Mood       *string      `json:"mood,omitempty"`
	Tags       *[]string    `json:"tags,omitempty"`
	Images     *[]string    `json:"images,omitempty"`
	AudioNotes *[]AudioNote `json:"audioNotes,omitempty"`
}
