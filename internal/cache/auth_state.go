package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/oscoderuz/django-shablon/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AccountAuthState 账号鉴权快照，仅用于服务端 Redis 缓存
type AccountAuthState struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	IsActive     bool   `json:"is_active"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
	TokenVersion uint64 `json:"token_version"`
	UpdatedAt    int64  `json:"updated_at"`
}

func accountAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:account:%d", userID)
}

// BuildAccountAuthState 从账号模型构建鉴权快照
func BuildAccountAuthState(user *models.User) *AccountAuthState {
	if user == nil {
		return nil
	}
	return &AccountAuthState{
		UserID:       user.ID,
		Username:     user.Username,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
		IsSuperuser:  user.IsSuperuser,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
}

// GetAccountAuthState 获取账号鉴权快照
func GetAccountAuthState(ctx context.Context, userID uint) (*AccountAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state AccountAuthState
	hit, err := GetJSON(ctx, accountAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAccountAuthState 写入账号鉴权快照
func SetAccountAuthState(ctx context.Context, state *AccountAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, accountAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelAccountAuthState 删除账号鉴权快照
func DelAccountAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, accountAuthStateKey(userID))
}
