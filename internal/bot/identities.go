package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is one entry of the bot profile pool. Strategy names the brain
// the bot plays with; see the Strategy* constants.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Strategy    string `json:"strategy"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	botIdentities     []BotIdentity
	botIDMap          map[string]bool
	botDisplayNameMap map[string]string
	botConfigMap      map[string]BotIdentity
	loadOnce          sync.Once
	provisionOnce     sync.Once
	loadErr           error
	generatedMu       sync.Mutex
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		botIDMap = make(map[string]bool)
		botDisplayNameMap = make(map[string]string)
		botConfigMap = make(map[string]BotIdentity)

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &botIdentities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		for _, identity := range botIdentities {
			if identity.UserID != "" {
				mapIdentity(identity)
			}
		}
	})
	return loadErr
}

func mapIdentity(identity BotIdentity) {
	botIDMap[identity.UserID] = true
	botDisplayNameMap[identity.UserID] = identity.DisplayName
	botConfigMap[identity.UserID] = identity
}

// ProvisionBots ensures the bot accounts exist in the Nakama database and
// carry the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range botIdentities {
			identity := &botIdentities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"strategy":     identity.Strategy,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: failed to update bot account %s: %v", userID, err)
			}

			mapIdentity(*identity)
			logger.Info("ProvisionBots: bot %s (%s) ready, strategy %s", identity.DisplayName, userID, identity.Strategy)
		}
	})
	return nil
}

// GetBotIdentity returns an identity for a bot by seat slot. Slots beyond the
// loaded pool get a generated identity, registered so IsBot keeps working.
func GetBotIdentity(slot int) BotIdentity {
	if len(botIdentities) > 0 {
		return botIdentities[slot%len(botIdentities)]
	}

	generatedMu.Lock()
	defer generatedMu.Unlock()
	identity := BotIdentity{
		UserID:      uuid.NewString(),
		Username:    fmt.Sprintf("bot-%d", slot+1),
		DisplayName: fmt.Sprintf("AI Player %d", slot+1),
		Strategy:    StrategyBalanced,
	}
	if botIDMap == nil {
		botIDMap = make(map[string]bool)
		botDisplayNameMap = make(map[string]string)
		botConfigMap = make(map[string]BotIdentity)
	}
	mapIdentity(identity)
	return identity
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	config, ok := botConfigMap[userID]
	return config, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty
// string if not a bot.
func GetBotDisplayName(userID string) string {
	if botDisplayNameMap == nil {
		return ""
	}
	return botDisplayNameMap[userID]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	if botIDMap == nil {
		return false
	}
	return botIDMap[userID]
}
