package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"tenthousand/internal/app"
	"tenthousand/internal/bot"
	"tenthousand/internal/config"
	"tenthousand/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is the JSON match label used for listing queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchStateSnapshot is broadcast to clients whenever seating changes.
type MatchStateSnapshot struct {
	Seats     []string       `json:"seats"`
	OwnerSeat int            `json:"owner_seat"`
	Tick      int64          `json:"tick"`
	Players   []SeatSnapshot `json:"players"`
}

// SeatSnapshot describes one occupied seat for clients.
type SeatSnapshot struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// KeepDiceRequest is the client payload for OpKeepDice.
type KeepDiceRequest struct {
	Dice domain.Dice `json:"dice"`
}

// GameErrorEvent is sent privately to the offending client.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [4]string                   `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat            int                         `json:"owner_seat"` // seat index of the match owner
	Tick                 int64                       `json:"tick"`
	Presences            map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	Svc                  *app.Service                `json:"-"`
	Game                 *domain.GameState           `json:"-"` // nil while in the lobby
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"` // min seconds a bot waits
	BotMaxDelay          int                         `json:"bot_max_delay"` // max seconds a bot waits
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                       `json:"bot_wait_until"` // tick when the bot should act
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"`
	TurnDuration         int                         `json:"turn_duration"`      // seconds a human may hold one decision
	TurnDeadlineTick     int64                       `json:"turn_deadline_tick"` // tick at which the server acts for a stalled human
	LastActorID          string                      `json:"last_actor_id"`
	Bots                 map[string]*bot.Agent       `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// playerIndex returns the index into game.Players for the user, or -1.
func playerIndex(game *domain.GameState, userID string) int {
	if game == nil {
		return -1
	}
	for i, p := range game.Players {
		if p.ID == userID {
			return i
		}
	}
	return -1
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		Svc:              app.NewService(nil),
		OwnerSeat:        -1,
		Bots:             make(map[string]*bot.Agent),
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		TurnDuration:     cfg.TurnDurationSeconds,
	}

	// Environment overrides for bot behavior.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["tenthousand_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["tenthousand_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["tenthousand_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["tenthousand_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if val, ok := env["tenthousand_turn_duration_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.TurnDuration = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}
	if state.TurnDuration == 0 {
		state.TurnDuration = 30
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  GameName,
		Phase: "lobby",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started).
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Reconnects keep their seat.
		already := false
		for _, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				already = true
				break
			}
		}
		if already {
			continue
		}

		// Assign seat: try empty seats first, then bots (if lobby).
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpRollDice:
			mh.handleRollDice(ctx, matchState, dispatcher, logger, msg)
		case OpKeepDice:
			mh.handleKeepDice(ctx, matchState, dispatcher, logger, msg)
		case OpBankScore:
			mh.handleBankScore(ctx, matchState, dispatcher, logger, msg)
		case OpDeclineCarryover:
			mh.handleDeclineCarryover(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	mh.processTurnTimer(ctx, matchState, dispatcher, logger)

	return matchState
}

// processTurnTimer acts for a human who has sat on a decision past the turn
// duration: bank when allowed, otherwise keep the turn moving.
func (mh *matchHandler) processTurnTimer(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.GameOver {
		state.LastActorID = ""
		return
	}

	current := domain.CurrentPlayer(*state.Game)
	if current.ID != state.LastActorID {
		state.LastActorID = current.ID
		state.TurnDeadlineTick = state.Tick + int64(state.TurnDuration)
		return
	}
	if isBotUserId(current.ID) || state.Tick < state.TurnDeadlineTick {
		return
	}

	logger.Info("processTurnTimer: Acting for stalled player %s", current.ID)
	move := bot.MakeDecision(&bot.ConservativeBot{}, state.Game.Turn, current.OnBoard)
	mh.applyMove(ctx, state, dispatcher, logger, current.ID, move)
	state.TurnDeadlineTick = state.Tick + int64(state.TurnDuration)
}

// applyMove runs a bot-shaped move through the app service and broadcasts
// the resulting events.
func (mh *matchHandler) applyMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, move bot.Move) {
	var (
		next   domain.GameState
		events []app.Event
		err    error
	)
	switch move.Action {
	case domain.ActionRoll:
		next, events, err = state.Svc.Roll(*state.Game, userID)
	case domain.ActionKeep:
		next, events, err = state.Svc.Keep(*state.Game, userID, move.Keep)
	case domain.ActionBank:
		next, events, err = state.Svc.Bank(*state.Game, userID)
	default:
		logger.Error("applyMove: Unexpected move %s for %s", move.Action, userID)
		return
	}
	if err != nil {
		logger.Error("applyMove: Move %s for %s failed: %v", move.Action, userID, err)
		return
	}

	state.Game = &next
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay.
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("processBots: Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game.
	if state.Game == nil || state.Game.GameOver {
		return
	}
	currentID := domain.CurrentPlayer(*state.Game).ID
	if !isBotUserId(currentID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", currentID, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentID] = agent
	}

	move, ok := agent.Decide(*state.Game)
	if !ok {
		return
	}
	mh.applyMove(ctx, state, dispatcher, logger, currentID, move)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var seatSnapshots []SeatSnapshot
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		score := 0
		if idx := playerIndex(state.Game, userId); idx >= 0 {
			score = state.Game.Players[idx].Score
		}

		seatSnapshots = append(seatSnapshots, SeatSnapshot{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			DisplayName: displayName,
			Score:       score,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   seatSnapshots,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

func (mh *matchHandler) senderSeat(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.senderSeat(state, senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		logger.Warn("StartGame: Game already in progress.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartGame {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", activeCount, app.MinPlayersToStartGame)
		return
	}

	cfg := config.GetGameConfig()
	configs := make([]domain.PlayerConfig, 0, activeCount)
	for _, userID := range state.Seats {
		if userID == "" {
			continue
		}

		pc := domain.PlayerConfig{ID: userID, Name: userID}
		if p, exists := state.Presences[userID]; exists {
			pc.Name = p.GetUsername()
		}
		if isBotUserId(userID) {
			pc.AI = true
			pc.Strategy = cfg.DefaultBotStrategy
			if identity, ok := bot.GetBotConfig(userID); ok {
				if identity.DisplayName != "" {
					pc.Name = identity.DisplayName
				}
				if identity.Strategy != "" {
					pc.Strategy = identity.Strategy
				}
			}
		}
		configs = append(configs, pc)
	}

	game, events, err := state.Svc.StartGame(configs)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	state.Game = &game
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game started with %d players.", activeCount)
}

func (mh *matchHandler) handleRollDice(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleRollDice: Game not started.")
		return
	}

	next, events, err := state.Svc.Roll(*state.Game, senderID)
	if err != nil {
		logger.Warn("handleRollDice: User %s failed to roll: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Game = &next
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleKeepDice(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleKeepDice: Game not started.")
		return
	}

	var request KeepDiceRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleKeepDice: Failed to unmarshal KeepDiceRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed keep request")
		return
	}

	next, events, err := state.Svc.Keep(*state.Game, senderID, request.Dice)
	if err != nil {
		logger.Warn("handleKeepDice: User %s failed to keep %v: %v. Roll: %v", senderID, request.Dice, err, state.Game.Turn.CurrentRoll)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Game = &next
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleBankScore(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleBankScore: Game not started.")
		return
	}

	next, events, err := state.Svc.Bank(*state.Game, senderID)
	if err != nil {
		logger.Warn("handleBankScore: User %s failed to bank: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Game = &next
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDeclineCarryover(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleDeclineCarryover: Game not started.")
		return
	}

	next, events, err := state.Svc.DeclineCarryover(*state.Game, senderID)
	if err != nil {
		logger.Warn("handleDeclineCarryover: User %s failed to decline: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Game = &next
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// eventOpCode maps app event kinds to wire opcodes.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventDiceRolled:
		return OpDiceRolled, true
	case app.EventDiceKept:
		return OpDiceKept, true
	case app.EventBusted:
		return OpBusted, true
	case app.EventBanked:
		return OpBanked, true
	case app.EventCarryoverDeclined:
		return OpCarryoverDeclined, true
	case app.EventTurnEnded:
		return OpTurnEnded, true
	case app.EventCarryoverOffered:
		return OpCarryoverOffered, true
	case app.EventGameEnded:
		return OpGameEnded, true
	}
	return 0, false
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	if ev.Kind == app.EventGameEnded {
		// Game ended, clear game state and update label back to lobby.
		state.Game = nil
		state.BotWaitUntil = 0
		mh.updateLabel(state, dispatcher, logger)
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  GameName,
		Phase: phase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
