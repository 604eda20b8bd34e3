package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WordsListInput represents the MCP tool input for listing a team's words.
type WordsListInput struct {
	TeamID int64 `json:"team_id" jsonschema:"team identifier"`
}

// WordEntry is one glossary word.
type WordEntry struct {
	ID     int64  `json:"id" jsonschema:"word identifier"`
	Word   string `json:"word" jsonschema:"the word"`
	TeamID int64  `json:"team_id" jsonschema:"owning team identifier"`
}

// WordsListResult represents the MCP tool output for listing words.
type WordsListResult struct {
	Words []WordEntry `json:"words" jsonschema:"words in the team glossary"`
}

// WordCreateInput represents the MCP tool input for adding a word.
type WordCreateInput struct {
	TeamID int64  `json:"team_id" jsonschema:"team identifier"`
	Word   string `json:"word" jsonschema:"word to add"`
}

// WordCreateResult represents the MCP tool output for adding a word.
type WordCreateResult struct {
	TeamID int64  `json:"team_id" jsonschema:"team identifier"`
	Word   string `json:"word" jsonschema:"word that was added"`
}

// MeaningsListInput represents the MCP tool input for listing meanings.
type MeaningsListInput struct {
	WordID int64 `json:"word_id" jsonschema:"word identifier"`
}

// Note is a meaning or reflection attached to a word.
type Note struct {
	ID        int64  `json:"id" jsonschema:"identifier"`
	WordID    int64  `json:"word_id" jsonschema:"word identifier"`
	Text      string `json:"text" jsonschema:"note text"`
	CreatedAt string `json:"created_at,omitempty" jsonschema:"creation time in RFC 3339"`
}

// MeaningsListResult represents the MCP tool output for listing meanings.
type MeaningsListResult struct {
	Meanings []Note `json:"meanings" jsonschema:"meanings of the word"`
}

// MeaningAddInput represents the MCP tool input for adding a meaning.
type MeaningAddInput struct {
	WordID  int64  `json:"word_id" jsonschema:"word identifier"`
	Meaning string `json:"meaning" jsonschema:"meaning text"`
}

// ReflectionsListInput represents the MCP tool input for listing reflections.
type ReflectionsListInput struct {
	WordID int64 `json:"word_id" jsonschema:"word identifier"`
}

// ReflectionsListResult represents the MCP tool output for listing reflections.
type ReflectionsListResult struct {
	Reflections []Note `json:"reflections" jsonschema:"reflections on the word"`
}

// ReflectionAddInput represents the MCP tool input for adding a reflection.
type ReflectionAddInput struct {
	WordID     int64  `json:"word_id" jsonschema:"word identifier"`
	Reflection string `json:"reflection" jsonschema:"reflection text"`
}

// NoteAddResult represents the MCP tool output for adding a meaning or
// reflection.
type NoteAddResult struct {
	WordID int64  `json:"word_id" jsonschema:"word identifier"`
	Text   string `json:"text" jsonschema:"text that was added"`
}

// WordsListTool defines the MCP tool schema for listing words.
func WordsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_words_list",
		Description: "Lists the words in a team glossary",
	}
}

// WordCreateTool defines the MCP tool schema for adding a word.
func WordCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_word_create",
		Description: "Adds a word to a team glossary",
	}
}

// MeaningsListTool defines the MCP tool schema for listing meanings.
func MeaningsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_meanings_list",
		Description: "Lists the meanings recorded for a word",
	}
}

// MeaningAddTool defines the MCP tool schema for adding a meaning.
func MeaningAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_meaning_add",
		Description: "Records a meaning for a word",
	}
}

// ReflectionsListTool defines the MCP tool schema for listing reflections.
func ReflectionsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_reflections_list",
		Description: "Lists the reflections recorded for a word",
	}
}

// ReflectionAddTool defines the MCP tool schema for adding a reflection.
func ReflectionAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_reflection_add",
		Description: "Records a reflection on a word",
	}
}

func WordsListHandler(backend Backend) mcp.ToolHandlerFor[WordsListInput, WordsListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input WordsListInput) (*mcp.CallToolResult, WordsListResult, error) {
		if input.TeamID <= 0 {
			return nil, WordsListResult{}, fmt.Errorf("team_id must be positive")
		}
		words, ok := backend.API.Words(ctx, backend.Token, input.TeamID)
		if !ok {
			return nil, WordsListResult{}, fmt.Errorf("words for team %d are unavailable", input.TeamID)
		}
		result := WordsListResult{Words: make([]WordEntry, 0, len(words))}
		for _, w := range words {
			result.Words = append(result.Words, WordEntry{ID: w.ID, Word: w.Word, TeamID: w.TeamID})
		}
		return nil, result, nil
	}
}

func WordCreateHandler(backend Backend) mcp.ToolHandlerFor[WordCreateInput, WordCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input WordCreateInput) (*mcp.CallToolResult, WordCreateResult, error) {
		if input.TeamID <= 0 {
			return nil, WordCreateResult{}, fmt.Errorf("team_id must be positive")
		}
		word := strings.TrimSpace(input.Word)
		if word == "" {
			return nil, WordCreateResult{}, fmt.Errorf("word is required")
		}
		written := backend.API.CreateWord(ctx, backend.Token, input.TeamID, word)
		if !written.Succeeded() {
			return nil, WordCreateResult{}, writeError("word create", written)
		}
		return nil, WordCreateResult{TeamID: input.TeamID, Word: word}, nil
	}
}

func MeaningsListHandler(backend Backend) mcp.ToolHandlerFor[MeaningsListInput, MeaningsListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeaningsListInput) (*mcp.CallToolResult, MeaningsListResult, error) {
		if input.WordID <= 0 {
			return nil, MeaningsListResult{}, fmt.Errorf("word_id must be positive")
		}
		meanings, ok := backend.API.Meanings(ctx, backend.Token, input.WordID)
		if !ok {
			return nil, MeaningsListResult{}, fmt.Errorf("meanings for word %d are unavailable", input.WordID)
		}
		result := MeaningsListResult{Meanings: make([]Note, 0, len(meanings))}
		for _, m := range meanings {
			created, _ := m.Created()
			result.Meanings = append(result.Meanings, Note{ID: m.ID, WordID: m.WordID, Text: m.Meaning, CreatedAt: formatTime(created)})
		}
		return nil, result, nil
	}
}

func MeaningAddHandler(backend Backend) mcp.ToolHandlerFor[MeaningAddInput, NoteAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeaningAddInput) (*mcp.CallToolResult, NoteAddResult, error) {
		return addNote(ctx, "meaning add", input.WordID, input.Meaning, func(text string) lingoapi.WriteResult {
			return backend.API.CreateMeaning(ctx, backend.Token, input.WordID, text)
		})
	}
}

func ReflectionsListHandler(backend Backend) mcp.ToolHandlerFor[ReflectionsListInput, ReflectionsListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReflectionsListInput) (*mcp.CallToolResult, ReflectionsListResult, error) {
		if input.WordID <= 0 {
			return nil, ReflectionsListResult{}, fmt.Errorf("word_id must be positive")
		}
		reflections, ok := backend.API.Reflections(ctx, backend.Token, input.WordID)
		if !ok {
			return nil, ReflectionsListResult{}, fmt.Errorf("reflections for word %d are unavailable", input.WordID)
		}
		result := ReflectionsListResult{Reflections: make([]Note, 0, len(reflections))}
		for _, r := range reflections {
			created, _ := r.Created()
			result.Reflections = append(result.Reflections, Note{ID: r.ID, WordID: r.WordID, Text: r.Reflection, CreatedAt: formatTime(created)})
		}
		return nil, result, nil
	}
}

func ReflectionAddHandler(backend Backend) mcp.ToolHandlerFor[ReflectionAddInput, NoteAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReflectionAddInput) (*mcp.CallToolResult, NoteAddResult, error) {
		return addNote(ctx, "reflection add", input.WordID, input.Reflection, func(text string) lingoapi.WriteResult {
			return backend.API.CreateReflection(ctx, backend.Token, input.WordID, text)
		})
	}
}

func addNote(ctx context.Context, op string, wordID int64, raw string, write func(string) lingoapi.WriteResult) (*mcp.CallToolResult, NoteAddResult, error) {
	if wordID <= 0 {
		return nil, NoteAddResult{}, fmt.Errorf("word_id must be positive")
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, NoteAddResult{}, fmt.Errorf("%s requires text", op)
	}
	if err := ctx.Err(); err != nil {
		return nil, NoteAddResult{}, err
	}
	written := write(text)
	if !written.Succeeded() {
		return nil, NoteAddResult{}, writeError(op, written)
	}
	return nil, NoteAddResult{WordID: wordID, Text: text}, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
