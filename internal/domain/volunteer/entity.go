package volunteer

import "time"

// Organizer is the user who published a post and receives its registrations.
type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is a volunteer need published by an organizer.
type Post struct {
	ID          string    `json:"_id,omitempty"`
	Thumbnail   string    `json:"thumbnail"`
	PostTitle   string    `json:"postTitle"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	NoVolunteer int       `json:"noVolunteer"`
	Deadline    time.Time `json:"deadline"`
	Organizer   Organizer `json:"takeVolunteer"`
}

// PostPatch carries the post fields present in an update request. Nil fields are left unchanged.
type PostPatch struct {
	Thumbnail   *string    `json:"thumbnail"`
	PostTitle   *string    `json:"postTitle"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Location    *string    `json:"location"`
	NoVolunteer *int       `json:"noVolunteer"`
	Deadline    *time.Time `json:"deadline"`
	Organizer   *Organizer `json:"takeVolunteer"`
}

// IsEmpty reports whether the patch sets no field.
func (p *PostPatch) IsEmpty() bool {
	return p == nil || *p == PostPatch{}
}

// Registration is a volunteer's request to join a post.
type Registration struct {
	ID          string    `json:"_id,omitempty"`
	PostID      string    `json:"postId"`
	Thumbnail   string    `json:"thumbnail"`
	PostTitle   string    `json:"postTitle"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	NoVolunteer int       `json:"noVolunteer"`
	Deadline    time.Time `json:"deadline"`
	Organizer   Organizer `json:"takeVolunteer"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Suggestion  string    `json:"suggestion"`
	Status      string    `json:"status"`
}

// SearchQuery is a 1-based page over posts whose title contains Search.
type SearchQuery struct {
	Search string
	Page   int
	Size   int
}

// PostFilter is the repository form of a search: literal title substring plus window.
type PostFilter struct {
	TitleContains string
	Skip          int64
	Limit         int64
}

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// RegisterResult reports both writes of a registration.
type RegisterResult struct {
	InsertedID    string `json:"insertedId"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
}
