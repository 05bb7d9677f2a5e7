package models

// CascadeRule describes one ownership edge of the content hierarchy
type CascadeRule struct {
	ParentTable string
	ChildTable  string
	ForeignKey  string
	Nullable    bool
}

// CascadeRules lists every foreign key of the schema. Each of them is declared
// with ON DELETE CASCADE, so deleting a lesson removes its scenes and their attachments.
var CascadeRules = []CascadeRule{
	{ParentTable: "lessons", ChildTable: "lesson_scenes", ForeignKey: "lesson_id"},
	{ParentTable: "lesson_scenes", ChildTable: "audio_files", ForeignKey: "scene_id", Nullable: true},
	{ParentTable: "lesson_scenes", ChildTable: "images", ForeignKey: "scene_id", Nullable: true},
	{ParentTable: "lesson_scenes", ChildTable: "videos", ForeignKey: "scene_id", Nullable: true},
}

// TableName returns the table that stores attachments of kind k
func (k MediaKind) TableName() string {
	switch k {
	case MediaKindAudio:
		return "audio_files"
	case MediaKindImage:
		return "images"
	case MediaKindVideo:
		return "videos"
	}
	return ""
}

// FileColumn returns the column holding the stored-file reference for kind k
func (k MediaKind) FileColumn() string {
	switch k {
	case MediaKindAudio:
		return "audio"
	case MediaKindImage:
		return "image"
	case MediaKindVideo:
		return "video"
	}
	return ""
}
