package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameTenThousand is the authoritative match handler name registered with Nakama.
	MatchNameTenThousand = "tenthousand_match"

	// GameName tags match labels so listings can filter on the game.
	GameName = "tenthousand"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame        int64 = 1
	OpRollDice         int64 = 2
	OpKeepDice         int64 = 3
	OpBankScore        int64 = 4
	OpDeclineCarryover int64 = 5

	// Server -> Client events
	OpPlayerJoined      int64 = 101
	OpPlayerLeft        int64 = 102
	OpGameStarted       int64 = 103
	OpDiceRolled        int64 = 104
	OpDiceKept          int64 = 105
	OpBusted            int64 = 106
	OpBanked            int64 = 107
	OpCarryoverDeclined int64 = 108
	OpTurnEnded         int64 = 109
	OpCarryoverOffered  int64 = 110
	OpGameEnded         int64 = 111
	OpGameError         int64 = 112
)
