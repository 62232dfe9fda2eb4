// Package wire maps content values to and from protobuf well-known types.
//
// The same structpb shapes are exchanged with the content service and stored
// as persistent cache payloads.
package wire

import (
	"fmt"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the structpb payloads.
const (
	FieldStories   = "stories"
	FieldVerses    = "verses"
	FieldTitle     = "title"
	FieldSummary   = "summary"
	FieldText      = "text"
	FieldTestament = "testament"
	FieldReference = "reference"
	FieldImageURL  = "image_url"
	FieldProfile   = "profile"
	FieldName      = "name"
	FieldPrincipal = "principal"
	FieldRole      = "role"
)

func stringField(s *structpb.Struct, key string) string {
	return strings.TrimSpace(s.GetFields()[key].GetStringValue())
}

func imageField(s *structpb.Struct) content.Option[*content.Image] {
	url := stringField(s, FieldImageURL)
	if url == "" {
		return content.None[*content.Image]()
	}
	return content.Some(content.FromURL(url))
}

// DecodeStories reads the stories list of s.
func DecodeStories(s *structpb.Struct) []content.Story {
	values := s.GetFields()[FieldStories].GetListValue().GetValues()
	stories := make([]content.Story, 0, len(values))
	for _, value := range values {
		item := value.GetStructValue()
		if item == nil {
			continue
		}
		stories = append(stories, content.Story{
			Title:   stringField(item, FieldTitle),
			Summary: stringField(item, FieldSummary),
			Verses:  DecodeVerseList(item.GetFields()[FieldVerses]),
			Image:   imageField(item),
		})
	}
	return stories
}

// DecodeVerses reads the verses list of s.
func DecodeVerses(s *structpb.Struct) []content.Verse {
	return DecodeVerseList(s.GetFields()[FieldVerses])
}

// DecodeVerseList reads a list value of verse structs. Verses without a
// known testament are dropped.
func DecodeVerseList(value *structpb.Value) []content.Verse {
	values := value.GetListValue().GetValues()
	verses := make([]content.Verse, 0, len(values))
	for _, value := range values {
		item := value.GetStructValue()
		if item == nil {
			continue
		}
		verse, err := DecodeVerse(item)
		if err != nil {
			continue
		}
		verses = append(verses, verse)
	}
	return verses
}

// DecodeVerse reads one verse and rejects unknown testaments.
func DecodeVerse(s *structpb.Struct) (content.Verse, error) {
	testament, err := content.ParseTestament(stringField(s, FieldTestament))
	if err != nil {
		return content.Verse{}, fmt.Errorf("decode verse: %w", err)
	}
	return content.Verse{
		Text:      stringField(s, FieldText),
		Testament: testament,
		Reference: stringField(s, FieldReference),
		Image:     imageField(s),
	}, nil
}

// DecodeProfile reads the optional profile of s.
func DecodeProfile(s *structpb.Struct) content.Option[content.UserProfile] {
	profile := s.GetFields()[FieldProfile].GetStructValue()
	if profile == nil {
		return content.None[content.UserProfile]()
	}
	return content.Some(content.UserProfile{Name: stringField(profile, FieldName)})
}

// EncodeVerse builds the struct form of verse.
func EncodeVerse(verse content.Verse) *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldText:      structpb.NewStringValue(verse.Text),
		FieldTestament: structpb.NewStringValue(string(verse.Testament)),
		FieldReference: structpb.NewStringValue(verse.Reference),
	}
	if image, ok := verse.Image.Get(); ok {
		fields[FieldImageURL] = structpb.NewStringValue(image.DirectURL())
	}
	return &structpb.Struct{Fields: fields}
}

func verseList(verses []content.Verse) *structpb.Value {
	values := make([]*structpb.Value, 0, len(verses))
	for _, verse := range verses {
		values = append(values, structpb.NewStructValue(EncodeVerse(verse)))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

// EncodeVerses builds {"verses": [...]}.
func EncodeVerses(verses []content.Verse) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{FieldVerses: verseList(verses)}}
}

// EncodeStories builds {"stories": [...]}.
func EncodeStories(stories []content.Story) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(stories))
	for _, story := range stories {
		fields := map[string]*structpb.Value{
			FieldTitle:   structpb.NewStringValue(story.Title),
			FieldSummary: structpb.NewStringValue(story.Summary),
			FieldVerses:  verseList(story.Verses),
		}
		if image, ok := story.Image.Get(); ok {
			fields[FieldImageURL] = structpb.NewStringValue(image.DirectURL())
		}
		values = append(values, structpb.NewStructValue(&structpb.Struct{Fields: fields}))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldStories: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

// EncodeProfile builds the flat {"name": ...} request form of profile.
func EncodeProfile(profile content.UserProfile) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldName: structpb.NewStringValue(strings.TrimSpace(profile.Name)),
	}}
}

// EncodeOptionalProfile builds {"profile": {...}} or an empty struct for None.
func EncodeOptionalProfile(profile content.Option[content.UserProfile]) *structpb.Struct {
	value, ok := profile.Get()
	if !ok {
		return &structpb.Struct{}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldProfile: structpb.NewStructValue(EncodeProfile(value)),
	}}
}

// Codec marshals T through a structpb payload.
type Codec[T any] struct {
	encode func(T) *structpb.Struct
	decode func(*structpb.Struct) (T, error)
}

// Marshal encodes value as protobuf bytes.
func (c Codec[T]) Marshal(value T) ([]byte, error) {
	return proto.Marshal(c.encode(value))
}

// Unmarshal decodes protobuf bytes produced by Marshal.
func (c Codec[T]) Unmarshal(payload []byte) (T, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(payload, s); err != nil {
		var zero T
		return zero, err
	}
	return c.decode(s)
}

func infallible[T any](decode func(*structpb.Struct) T) func(*structpb.Struct) (T, error) {
	return func(s *structpb.Struct) (T, error) {
		return decode(s), nil
	}
}

// Codecs for persisted query results.
var (
	StoriesCodec = Codec[[]content.Story]{encode: EncodeStories, decode: infallible(DecodeStories)}
	VersesCodec  = Codec[[]content.Verse]{encode: EncodeVerses, decode: infallible(DecodeVerses)}
	VerseCodec   = Codec[content.Verse]{encode: EncodeVerse, decode: DecodeVerse}
)
