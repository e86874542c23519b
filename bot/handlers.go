/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface. Every command is
 * scoped to the guild it was issued in; the veto and result commands resolve their series from
 * the channel they were typed in
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"tournament-bot/api/logic"
	"tournament-bot/api/shared"
	"tournament-bot/api/store"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newMessageHandler routes an incoming message to its command handler
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// To prevent bot from responding to its own message, if the message author id matches the
	// bot's then just return
	if message.Author.ID == botUserID {
		return
	}
	if message.GuildID == "" {
		return
	}

	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$register"):
		b.registerTeamHandler(session, message)

	case startsWith(message.Content, "$addplayer"):
		b.addPlayerHandler(session, message)

	case startsWith(message.Content, "$start"):
		b.startTournamentHandler(session, message)

	case startsWith(message.Content, "$setsummary"):
		b.setSummaryChannelHandler(session, message)

	case startsWith(message.Content, "$veto"):
		b.selectionHandler(session, message, logic.ActionVeto)

	case startsWith(message.Content, "$pick"):
		b.selectionHandler(session, message, logic.ActionPick)

	case startsWith(message.Content, "$result"):
		b.resultHandler(session, message)

	case startsWith(message.Content, "$match"):
		b.matchStateHandler(session, message)

	case startsWith(message.Content, "$summary"):
		b.summaryHandler(session, message)

	case startsWith(message.Content, "$teams"):
		b.teamsHandler(session, message)
	}
}

func startsWith(content string, prefix string) bool {
	return strings.HasPrefix(content, prefix)
}

// splitArgs splits a command into its arguments, keeping quoted team names whole
func splitArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	parts, _ := spaceSplitter.Split(content)
	var args []string
	for _, part := range parts {
		part = strings.Trim(part, "\"“”")
		if part != "" {
			args = append(args, part)
		}
	}
	return args
}

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Tournament Bot v1.0\n")
	res.WriteString("`$register \"Team Name\"`: registers a team and gives you its role\n")
	res.WriteString("`$addplayer \"Team Name\" nickname steamid64`: adds a player to a team's roster\n")
	res.WriteString("`$start`: starts the tournament once 16 teams are registered\n")
	res.WriteString("`$veto map` / `$pick map`: bans or picks a map in your match channel, on your team's turn\n")
	res.WriteString("`$result map 1|2`: records a map winner, admin channel only\n")
	res.WriteString("`$match`: shows the veto history and map scores of this channel's match\n")
	res.WriteString("`$match \"Team A\" \"Team B\"`: shows the series between two teams from any channel\n")
	res.WriteString("`$setsummary`: keeps a live tournament summary message in this channel\n")
	res.WriteString("`$summary`: shows every round's results and the standings\n")
	res.WriteString("`$teams`: shows the registered teams and their records\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// registerTeamHandler handles the $register command. The team gets a Discord role, assigned to
// the registering user; the role is how veto turns are authorized later
func (b *Bot) registerTeamHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$register \"Team Name\"`")
		return
	}
	name := args[1]

	team, err := b.APIPtr.RegisterTeam(message.GuildID, name)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not register '%s': %s", name, err))
		return
	}

	role, err := session.GuildRoleCreate(message.GuildID, &discordgo.RoleParams{Name: name})
	if err != nil {
		log.Println("failed to create role:", err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is registered, but its role could not be created: %s", name, err))
		return
	}
	team.RoleID = role.ID
	if err := b.APIPtr.Store.UpdateTeam(team); err != nil {
		log.Println("failed to store role id:", err)
	}
	if err := session.GuildMemberRoleAdd(message.GuildID, message.Author.ID, role.ID); err != nil {
		log.Println("failed to assign role:", err)
	}

	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is registered. You have been given the %s role", name, name))
}

// addPlayerHandler handles the $addplayer command
func (b *Bot) addPlayerHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 4 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$addplayer \"Team Name\" nickname steamid64`")
		return
	}

	if err := b.APIPtr.AddPlayer(message.GuildID, args[1], args[2], args[3]); err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not add player: %s", err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s added to '%s'", args[2], args[1]))
}

// startTournamentHandler handles the $start command
func (b *Bot) startTournamentHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if err := b.APIPtr.StartTournament(message.GuildID); err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not start the tournament: %s", err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, "The tournament has started, good luck! Check your match channels for the veto")
}

// selectionHandler handles the $veto and $pick commands. The series comes from the channel the
// command was typed in and the acting team from the author's roles; the engine decides whether
// the action is legal
func (b *Bot) selectionHandler(session DiscordSession, message *discordgo.MessageCreate, action logic.ActionType) {
	args := splitArgs(message.Content)
	if len(args) != 2 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Usage: `$%s map`", action))
		return
	}

	game, err := b.APIPtr.Store.GetGameByChannel(message.GuildID, message.ChannelID)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "This channel does not belong to a match")
		return
	}

	mapName, err := logic.MatchName(args[1], b.APIPtr.MapPool)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}

	actor := b.actingTeam(message, game)

	if action == logic.ActionVeto {
		err = b.APIPtr.SubmitVeto(message.GuildID, game.ID, actor, mapName)
	} else {
		err = b.APIPtr.SubmitPick(message.GuildID, game.ID, actor, mapName)
	}
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not %s %s: %s", action, mapName, err))
		return
	}

	state, err := b.APIPtr.GetMatchState(message.GuildID, game.ID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("The %s of %s is recorded", action, mapName))
		return
	}
	session.ChannelMessageSend(message.ChannelID, renderMatchState(state))
}

// resultHandler handles the $result command. Only accepted in a match's admin channel so that
// channel permissions decide who may report scores
func (b *Bot) resultHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$result map 1|2`")
		return
	}

	game, err := b.APIPtr.Store.GetGameByChannel(message.GuildID, message.ChannelID)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "This channel does not belong to a match")
		return
	}
	if game.AdminChannelID != "" && game.AdminChannelID != message.ChannelID {
		session.ChannelMessageSend(message.ChannelID, "Results can only be recorded in the match's admin channel")
		return
	}

	mapName, err := logic.MatchName(args[1], b.APIPtr.MapPool)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}
	winner, err := strconv.Atoi(args[2])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "The winner must be 1 or 2")
		return
	}

	if err := b.APIPtr.RecordMapResult(message.GuildID, game.ID, mapName, winner); err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not record the result: %s", err))
		return
	}

	state, err := b.APIPtr.GetMatchState(message.GuildID, game.ID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "Result recorded")
		return
	}
	session.ChannelMessageSend(message.ChannelID, renderMatchState(state))
}

// setSummaryChannelHandler handles the $setsummary command. The channel the command is typed
// in becomes the home of the guild's live tournament summary message
func (b *Bot) setSummaryChannelHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if err := b.APIPtr.SetSummaryChannel(message.GuildID, message.ChannelID); err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	session.ChannelMessageSend(message.ChannelID, "The tournament summary will be kept up to date in this channel")
}

// matchStateHandler handles the $match command. With no arguments it shows the match of the
// channel it was typed in; with two team names it finds the series between those teams
func (b *Bot) matchStateHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) == 3 {
		b.matchLookupHandler(session, message, args[1], args[2])
		return
	}

	game, err := b.APIPtr.Store.GetGameByChannel(message.GuildID, message.ChannelID)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "This channel does not belong to a match")
		return
	}
	state, err := b.APIPtr.GetMatchState(message.GuildID, game.ID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	session.ChannelMessageSend(message.ChannelID, renderMatchState(state))
}

// matchLookupHandler resolves two team names, with the same fuzzy matching the map names get,
// and shows the series between them
func (b *Bot) matchLookupHandler(session DiscordSession, message *discordgo.MessageCreate, nameA string, nameB string) {
	teams, err := b.APIPtr.Store.GetAllTeams(message.GuildID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, team.Name)
	}

	resolvedA, err := logic.MatchName(nameA, names)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}
	resolvedB, err := logic.MatchName(nameB, names)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}

	game, err := b.APIPtr.FindSeries(message.GuildID, resolvedA, resolvedB)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No series between '%s' and '%s'", resolvedA, resolvedB))
		return
	}
	state, err := b.APIPtr.GetMatchState(message.GuildID, game.ID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	session.ChannelMessageSend(message.ChannelID, renderMatchState(state))
}

// summaryHandler handles the $summary command
func (b *Bot) summaryHandler(session DiscordSession, message *discordgo.MessageCreate) {
	summary, err := b.APIPtr.GetTournamentSummary(message.GuildID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	session.ChannelMessageSend(message.ChannelID, renderSummary(summary))
}

// teamsHandler handles the $teams command
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	teams, err := b.APIPtr.Store.GetTeamsByStanding(message.GuildID)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	if len(teams) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No teams are registered yet. Use `$register` to enter")
		return
	}

	var res strings.Builder
	res.WriteString("Registered teams:\n")
	for _, team := range teams {
		res.WriteString(fmt.Sprintf("%s (%d-%d)\n", team.Name, team.SwissWins, team.SwissLosses))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// actingTeam resolves which side of a game the message author plays for from their roles.
// NoTeam when they hold neither team role; the engine rejects that as not authorized
func (b *Bot) actingTeam(message *discordgo.MessageCreate, game store.Game) shared.TeamNumber {
	if message.Member == nil {
		return shared.NoTeam
	}

	roleOf := func(teamID primitive.ObjectID) string {
		team, err := b.APIPtr.Store.GetTeamByID(message.GuildID, teamID)
		if err != nil {
			return ""
		}
		return team.RoleID
	}
	roleOne := roleOf(game.TeamOneID)
	roleTwo := roleOf(game.TeamTwoID)

	for _, roleID := range message.Member.Roles {
		if roleID != "" && roleID == roleOne {
			return shared.TeamOne
		}
		if roleID != "" && roleID == roleTwo {
			return shared.TeamTwo
		}
	}
	return shared.NoTeam
}
