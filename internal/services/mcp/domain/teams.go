package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TeamsListInput represents the MCP tool input for listing teams.
type TeamsListInput struct{}

// TeamEntry is one team the user belongs to.
type TeamEntry struct {
	ID      int64  `json:"id" jsonschema:"team identifier"`
	Name    string `json:"name" jsonschema:"team name"`
	IsOwner bool   `json:"is_owner" jsonschema:"whether the user owns the team"`
}

// TeamsListResult represents the MCP tool output for listing teams.
type TeamsListResult struct {
	Teams []TeamEntry `json:"teams" jsonschema:"teams the user belongs to"`
}

// TeamSelectInput represents the MCP tool input for switching teams.
type TeamSelectInput struct {
	TeamID int64 `json:"team_id" jsonschema:"team identifier"`
}

// TeamSelectResult represents the MCP tool output for switching teams.
type TeamSelectResult struct {
	Team TeamEntry `json:"team" jsonschema:"the new current team"`
}

// TeamsListTool defines the MCP tool schema for listing teams.
func TeamsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_teams_list",
		Description: "Lists the teams the user belongs to",
	}
}

// TeamSelectTool defines the MCP tool schema for switching teams.
func TeamSelectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lingo_team_select",
		Description: "Switches the user's current team",
	}
}

func TeamsListHandler(backend Backend) mcp.ToolHandlerFor[TeamsListInput, TeamsListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ TeamsListInput) (*mcp.CallToolResult, TeamsListResult, error) {
		teams, ok := backend.API.MyTeams(ctx, backend.Token)
		if !ok {
			return nil, TeamsListResult{}, fmt.Errorf("teams are unavailable")
		}
		result := TeamsListResult{Teams: make([]TeamEntry, 0, len(teams))}
		for _, t := range teams {
			result.Teams = append(result.Teams, TeamEntry{ID: t.ID, Name: t.Name, IsOwner: t.IsOwner})
		}
		return nil, result, nil
	}
}

func TeamSelectHandler(backend Backend) mcp.ToolHandlerFor[TeamSelectInput, TeamSelectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TeamSelectInput) (*mcp.CallToolResult, TeamSelectResult, error) {
		if input.TeamID <= 0 {
			return nil, TeamSelectResult{}, fmt.Errorf("team_id must be positive")
		}
		written := backend.API.SetCurrentTeam(ctx, backend.Token, input.TeamID)
		if !written.Succeeded() {
			return nil, TeamSelectResult{}, writeError("team select", written)
		}
		team, ok := backend.API.Team(ctx, backend.Token, input.TeamID)
		if !ok {
			return nil, TeamSelectResult{}, fmt.Errorf("team %d is unavailable", input.TeamID)
		}
		return nil, TeamSelectResult{Team: TeamEntry{ID: input.TeamID, Name: team.Name, IsOwner: team.IsOwner}}, nil
	}
}
