package domain

import "time"

// Principal 是一次请求的认证上下文：谁在调用，以及缓存的角色。
// nil 表示未认证调用方。
type Principal struct {
	UserID    uint
	Role      Role
	SessionID string
}

// Is 判断调用方是否为指定用户
func (p *Principal) Is(userID uint) bool {
	return p != nil && p.UserID == userID
}

// HasRole 判断调用方是否拥有指定角色之一
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Session 存储在会话存储中的记录，只包含用户 ID 和缓存的角色。
type Session struct {
	ID        string
	UserID    uint
	Role      Role
	CreatedAt time.Time
}
