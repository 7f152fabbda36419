package httpapi

import (
	"strconv"

	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
)

// CreateGameRequest: new game registration DTO
type CreateGameRequest struct {
	Name           string `json:"name"`
	CreatorID      int64  `json:"creatorId"`
	SignupThreadID int64  `json:"signupThreadId"`
}

// PlayerRequest: join/leave request DTO
type PlayerRequest struct {
	PlayerID int64 `json:"playerId"`
}

// DayChannelsDTO: channel bundle for one game day
type DayChannelsDTO struct {
	VotesChannelID      int64 `json:"votesChannelId"`
	DiscussionChannelID int64 `json:"discussionChannelId"`
	VotesMessageID      int64 `json:"votesMessageId"`
}

func (d DayChannelsDTO) toModel() model.DayChannels {
	return model.DayChannels{
		VotesChannelID:      d.VotesChannelID,
		DiscussionChannelID: d.DiscussionChannelID,
		VotesMessageID:      d.VotesMessageID,
	}
}

// StartGameRequest: game start request DTO
type StartGameRequest struct {
	ActorID int64          `json:"actorId"`
	Day1    DayChannelsDTO `json:"day1"`
}

// VoteRequest: ballot DTO. Kind is candidate, abstain or veto; Candidate is
// read only for candidate ballots. Names maps player id (as a string, JSON
// object keys) to display name.
type VoteRequest struct {
	VoterID   int64             `json:"voterId"`
	Kind      string            `json:"kind"`
	Candidate int64             `json:"candidate,omitempty"`
	Names     map[string]string `json:"names,omitempty"`
}

// EndDayRequest: day resolution request DTO
type EndDayRequest struct {
	ActorID int64             `json:"actorId"`
	NextDay DayChannelsDTO    `json:"nextDay"`
	Names   map[string]string `json:"names,omitempty"`
}

// ActorRequest: moderator action request DTO
type ActorRequest struct {
	ActorID int64 `json:"actorId"`
}

// GameResponse: game state response DTO. Roles are exposed only once the
// game has ended; the assignment travels through StartGameResponse instead.
type GameResponse struct {
	Name              string                 `json:"name"`
	Status            string                 `json:"status"`
	CurrentDay        int                    `json:"currentDay"`
	CreatorID         int64                  `json:"creatorId"`
	SignupThreadID    int64                  `json:"signupThreadId"`
	Players           []int64                `json:"players"`
	EliminatedPlayers []int64                `json:"eliminatedPlayers"`
	Roles             map[string]string      `json:"roles,omitempty"`
	Channels          map[string]DayChannels `json:"channels,omitempty"`
}

// DayChannels mirrors model.DayChannels with camelCase keys.
type DayChannels struct {
	VotesChannelID      int64 `json:"votesChannelId"`
	DiscussionChannelID int64 `json:"discussionChannelId"`
	VotesMessageID      int64 `json:"votesMessageId"`
}

func toGameResponse(game *model.Game) GameResponse {
	resp := GameResponse{
		Name:              game.Name,
		Status:            string(game.Status),
		CurrentDay:        game.CurrentDay,
		CreatorID:         game.CreatorID,
		SignupThreadID:    game.SignupThreadID,
		Players:           game.Players,
		EliminatedPlayers: game.EliminatedPlayers,
	}

	if game.Status == model.StatusEnded && len(game.Roles) > 0 {
		resp.Roles = make(map[string]string, len(game.Roles))
		for id, roleName := range game.Roles {
			resp.Roles[strconv.FormatInt(id, 10)] = roleName
		}
	}

	if len(game.Channels) > 0 {
		resp.Channels = make(map[string]DayChannels, len(game.Channels))
		for day, ch := range game.Channels {
			resp.Channels[strconv.Itoa(day)] = DayChannels{
				VotesChannelID:      ch.VotesChannelID,
				DiscussionChannelID: ch.DiscussionChannelID,
				VotesMessageID:      ch.VotesMessageID,
			}
		}
	}
	return resp
}

// PlayersResponse: roster snapshot DTO
type PlayersResponse struct {
	Players    []int64 `json:"players"`
	Alive      []int64 `json:"alive"`
	Eliminated []int64 `json:"eliminated"`
}

// RoleCard: what the gateway needs to DM one player their role.
type RoleCard struct {
	Role        string `json:"role"`
	Team        string `json:"team"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// StartGameResponse: game start result DTO. Assignments are keyed by player
// id as a string; they are returned exactly once, here.
type StartGameResponse struct {
	Game         GameResponse        `json:"game"`
	Distribution string              `json:"distribution"`
	Assignments  map[string]RoleCard `json:"assignments"`
}

// VoteResponse: ballot result DTO carrying the refreshed tally message.
type VoteResponse struct {
	Message string `json:"message"`
}

// EndDayResponse: day resolution result DTO
type EndDayResponse struct {
	Game         GameResponse `json:"game"`
	Outcome      string       `json:"outcome"`
	Eliminated   *int64       `json:"eliminated,omitempty"`
	TiedWith     []int64      `json:"tiedWith,omitempty"`
	Winner       string       `json:"winner,omitempty"`
	Announcement string       `json:"announcement"`
	Chunks       []string     `json:"chunks"`
}

// DistributionResponse: role distribution preview DTO
type DistributionResponse struct {
	Players      int    `json:"players"`
	Distribution string `json:"distribution"`
}

// CreateNPCRequest: NPC registration DTO
type CreateNPCRequest struct {
	Name    string `json:"name"`
	Profile string `json:"profile,omitempty"`
}

// NPCResponse: NPC state response DTO
type NPCResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Profile string `json:"profile,omitempty"`
}

// NPCJoinRequest: NPC signup request DTO
type NPCJoinRequest struct {
	Game string `json:"game"`
}

// NPCVoteRequest: ballot cast on behalf of an NPC
type NPCVoteRequest struct {
	Game      string            `json:"game"`
	Kind      string            `json:"kind"`
	Candidate int64             `json:"candidate,omitempty"`
	Names     map[string]string `json:"names,omitempty"`
}

// NPCJoinResponse: NPC signup result DTO
type NPCJoinResponse struct {
	Game GameResponse `json:"game"`
	NPC  NPCResponse  `json:"npc"`
}

// parseNames converts the wire name map (string keys) to int64 keys.
// Unparseable keys are dropped; a missing name only degrades display.
func parseNames(wire map[string]string) map[int64]string {
	if len(wire) == 0 {
		return nil
	}
	names := make(map[int64]string, len(wire))
	for key, name := range wire {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		names[id] = name
	}
	return names
}
