package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	errGatewayRequired = errors.New("mcptools: gateway is required")
	errOutOfRange      = errors.New("index is out of range")
)

// Tools act on behalf of the anonymous caller; everything they return is
// public content.
type tools struct {
	gateway Gateway
}

// VerseResult is a verse as returned by the tools.
type VerseResult struct {
	Reference string `json:"reference" jsonschema:"scripture reference"`
	Text      string `json:"text" jsonschema:"verse text"`
	Testament string `json:"testament" jsonschema:"old or new"`
	ImageURL  string `json:"image_url,omitempty" jsonschema:"image url when a remote image is attached"`
}

// StoryResult is a story as returned by the tools.
type StoryResult struct {
	Index   int           `json:"index" jsonschema:"zero-based position used by get_story"`
	Title   string        `json:"title"`
	Summary string        `json:"summary"`
	Path    string        `json:"path" jsonschema:"site path of the story page"`
	Verses  []VerseResult `json:"verses,omitempty"`
}

// ListStoriesInput has no parameters.
type ListStoriesInput struct{}

// ListStoriesResult lists every story without its verses.
type ListStoriesResult struct {
	Stories []StoryResult `json:"stories"`
}

// GetStoryInput selects one story.
type GetStoryInput struct {
	Index int `json:"index" jsonschema:"zero-based story position"`
}

// ListVersesInput selects a testament.
type ListVersesInput struct {
	Testament string `json:"testament" jsonschema:"old or new"`
}

// ListVersesResult lists the verses of one testament.
type ListVersesResult struct {
	Verses []VerseResult `json:"verses"`
}

// DailyVerseInput has no parameters.
type DailyVerseInput struct{}

// UserProfileInput selects a user.
type UserProfileInput struct {
	Principal string `json:"principal" jsonschema:"user principal"`
}

// UserProfileResult is a public profile.
type UserProfileResult struct {
	Principal string `json:"principal"`
	Found     bool   `json:"found"`
	Name      string `json:"name,omitempty"`
}

func registerTools(server *mcp.Server, t tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_stories",
		Description: "Lists every story with its title and summary",
	}, t.listStories)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_story",
		Description: "Returns one story with its verses",
	}, t.getStory)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_verses",
		Description: "Lists the verses of the old or new testament",
	}, t.listVerses)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "daily_verse",
		Description: "Returns the verse of the day",
	}, t.dailyVerse)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_user_profile",
		Description: "Returns the public profile of a user",
	}, t.userProfile)
}

func (t tools) listStories(ctx context.Context, _ *mcp.CallToolRequest, _ ListStoriesInput) (*mcp.CallToolResult, ListStoriesResult, error) {
	stories, err := t.gateway.Stories(ctx, content.Anonymous())
	if err != nil {
		return nil, ListStoriesResult{}, fmt.Errorf("list stories: %w", err)
	}
	result := ListStoriesResult{Stories: make([]StoryResult, 0, len(stories))}
	for i, story := range stories {
		result.Stories = append(result.Stories, storyResult(i, story, false))
	}
	return nil, result, nil
}

func (t tools) getStory(ctx context.Context, _ *mcp.CallToolRequest, input GetStoryInput) (*mcp.CallToolResult, StoryResult, error) {
	stories, err := t.gateway.Stories(ctx, content.Anonymous())
	if err != nil {
		return nil, StoryResult{}, fmt.Errorf("get story: %w", err)
	}
	if input.Index < 0 || input.Index >= len(stories) {
		return nil, StoryResult{}, fmt.Errorf("get story %d: %w", input.Index, errOutOfRange)
	}
	return nil, storyResult(input.Index, stories[input.Index], true), nil
}

func (t tools) listVerses(ctx context.Context, _ *mcp.CallToolRequest, input ListVersesInput) (*mcp.CallToolResult, ListVersesResult, error) {
	testament, err := content.ParseTestament(input.Testament)
	if err != nil {
		return nil, ListVersesResult{}, err
	}
	verses, err := t.gateway.VersesByTestament(ctx, content.Anonymous(), testament)
	if err != nil {
		return nil, ListVersesResult{}, fmt.Errorf("list %s testament: %w", testament, err)
	}
	return nil, ListVersesResult{Verses: verseResults(verses)}, nil
}

func (t tools) dailyVerse(ctx context.Context, _ *mcp.CallToolRequest, _ DailyVerseInput) (*mcp.CallToolResult, VerseResult, error) {
	verse, err := t.gateway.DailyVerse(ctx, content.Anonymous())
	if err != nil {
		return nil, VerseResult{}, fmt.Errorf("daily verse: %w", err)
	}
	return nil, verseResult(verse), nil
}

func (t tools) userProfile(ctx context.Context, _ *mcp.CallToolRequest, input UserProfileInput) (*mcp.CallToolResult, UserProfileResult, error) {
	profile, err := t.gateway.UserProfile(ctx, content.Anonymous(), input.Principal)
	if err != nil {
		return nil, UserProfileResult{}, fmt.Errorf("get user profile: %w", err)
	}
	result := UserProfileResult{Principal: input.Principal}
	if found, ok := profile.Get(); ok {
		result.Found = true
		result.Name = found.Name
	}
	return nil, result, nil
}

func storyResult(index int, story content.Story, withVerses bool) StoryResult {
	result := StoryResult{
		Index:   index,
		Title:   story.Title,
		Summary: story.Summary,
		Path:    routepath.Story(index),
	}
	if withVerses {
		result.Verses = verseResults(story.Verses)
	}
	return result
}

func verseResults(verses []content.Verse) []VerseResult {
	results := make([]VerseResult, 0, len(verses))
	for _, verse := range verses {
		results = append(results, verseResult(verse))
	}
	return results
}

func verseResult(verse content.Verse) VerseResult {
	result := VerseResult{
		Reference: verse.Reference,
		Text:      verse.Text,
		Testament: string(verse.Testament),
	}
	if image, ok := verse.Image.Get(); ok && !image.NeedsUpload() {
		result.ImageURL = image.DirectURL()
	}
	return result
}
