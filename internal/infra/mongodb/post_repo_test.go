package mongodb

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestTitleFilter_EscapesMetacharacters(t *testing.T) {
	filter := titleFilter("c++ (weekend)")
	if len(filter) != 1 || filter[0].Key != "postTitle" {
		t.Fatalf("unexpected filter %v", filter)
	}

	re, ok := filter[0].Value.(bson.Regex)
	if !ok {
		t.Fatalf("expected bson.Regex, got %T", filter[0].Value)
	}
	if re.Options != "i" {
		t.Errorf("expected case-insensitive option, got %q", re.Options)
	}

	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	if !compiled.MatchString("Teach C++ (Weekend) classes") {
		t.Errorf("expected literal match, pattern %q", re.Pattern)
	}
	if compiled.MatchString("c (weekend)") {
		t.Errorf("expected metacharacters to be literal, pattern %q", re.Pattern)
	}
}

func TestTitleFilter_EmptyMatchesAll(t *testing.T) {
	if filter := titleFilter(""); len(filter) != 0 {
		t.Errorf("expected empty filter, got %v", filter)
	}
}

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()
	got, err := parseID(oid.Hex())
	if err != nil || got != oid {
		t.Fatalf("parseID(%q) = %v, %v", oid.Hex(), got, err)
	}

	if _, err := parseID("not-an-object-id"); !errors.Is(err, volunteer.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestPostDocument_Mapping(t *testing.T) {
	post := &volunteer.Post{
		ID:          "ignored-on-write",
		PostTitle:   "Beach cleanup",
		NoVolunteer: 4,
		Deadline:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Organizer:   volunteer.Organizer{Name: "Org", Email: "org@x.com"},
	}

	doc := toPostDocument(post)
	if !doc.ID.IsZero() {
		t.Errorf("expected _id to be left for the server, got %v", doc.ID)
	}

	doc.ID = bson.NewObjectID()
	back := doc.toDomain()
	if back.ID != doc.ID.Hex() || back.PostTitle != post.PostTitle || back.Organizer != post.Organizer ||
		back.NoVolunteer != 4 || !back.Deadline.Equal(post.Deadline) {
		t.Errorf("unexpected mapping %+v", back)
	}
}

func TestHexID(t *testing.T) {
	oid := bson.NewObjectID()
	if hexID(oid) != oid.Hex() {
		t.Errorf("expected hex of object id")
	}
	if hexID(nil) != "" || hexID("custom") != "" {
		t.Errorf("expected empty id for non-ObjectID values")
	}
}

func TestPatchUpdate_SetsOnlyPresentFields(t *testing.T) {
	title := "Renamed"
	update := patchUpdate(&volunteer.PostPatch{PostTitle: &title})

	if len(update) != 1 || update[0].Key != "$set" {
		t.Fatalf("expected a single $set, got %v", update)
	}
	set, ok := update[0].Value.(bson.D)
	if !ok {
		t.Fatalf("expected bson.D, got %T", update[0].Value)
	}
	if len(set) != 1 || set[0].Key != "postTitle" || set[0].Value != "Renamed" {
		t.Errorf("expected only postTitle to be set, got %v", set)
	}

	raw, err := bson.Marshal(update)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"takeVolunteer", "noVolunteer", "deadline"} {
		if _, err := bson.Raw(raw).LookupErr("$set", key); err == nil {
			t.Errorf("title-only update must not touch %s", key)
		}
	}
}

func TestPatchUpdate_ZeroValuesAreKept(t *testing.T) {
	zero := 0
	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	organizer := volunteer.Organizer{Name: "New Org", Email: "new@x.com"}

	update := patchUpdate(&volunteer.PostPatch{NoVolunteer: &zero, Deadline: &deadline, Organizer: &organizer})
	set := update[0].Value.(bson.D)

	got := map[string]any{}
	for _, e := range set {
		got[e.Key] = e.Value
	}
	if len(got) != 3 || got["noVolunteer"] != 0 || got["deadline"] != deadline ||
		got["takeVolunteer"] != organizerDocument(organizer) {
		t.Errorf("unexpected $set %v", got)
	}
}
