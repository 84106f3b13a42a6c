package cache

import (
	"context"
	"fmt"
	"time"
)

// AuthState is the cached identity snapshot the auth middleware checks
// before touching the database.
type AuthState struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Confirmed bool   `json:"confirmed"`
}

const authStateTTL = 10 * time.Minute

func authStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// GetAuthState loads the cached snapshot for a user; the bool reports a
// hit.
func GetAuthState(ctx context.Context, userID uint) (*AuthState, bool) {
	if !Enabled() {
		return nil, false
	}
	var state AuthState
	hit, err := GetJSON(ctx, authStateKey(userID), &state)
	if err != nil || !hit {
		return nil, false
	}
	return &state, true
}

// SetAuthState stores the snapshot. Errors are swallowed, the cache is
// advisory.
func SetAuthState(ctx context.Context, state *AuthState) {
	if state == nil || state.UserID == 0 {
		return
	}
	_ = SetJSON(ctx, authStateKey(state.UserID), state, authStateTTL)
}

// InvalidateAuthState drops the snapshot, called on profile updates and
// password changes so stale identity never outlives a write.
func InvalidateAuthState(ctx context.Context, userID uint) {
	if userID == 0 {
		return
	}
	_ = Del(ctx, authStateKey(userID))
}
