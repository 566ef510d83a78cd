package service

import (
	"job-board/internal/domain"
)

// Policy 是一条基于角色的授权规则，以数据形式表达，方便调度层和服务层共用、单独测试。
//
// Public 为 true 时任何调用方都放行；否则必须已认证，且当 Roles 非空时角色必须在其中。
type Policy struct {
	Name   string
	Public bool
	Roles  []domain.Role
	Reason string // 角色不满足时返回给调用方的原因
}

// Check 判断调用方是否满足规则
func (p Policy) Check(principal *domain.Principal) error {
	if p.Public {
		return nil
	}
	if principal == nil {
		return ErrAuthenticationRequired
	}
	if len(p.Roles) == 0 || principal.HasRole(p.Roles...) {
		return nil
	}
	if p.Reason == "" {
		return ErrAuthorization
	}
	return &Error{Kind: KindAuthorization, Reason: p.Reason}
}

// 预定义规则
var (
	PublicAccess = Policy{Name: "public", Public: true}

	Authenticated = Policy{Name: "authenticated"}

	AdminOnly = Policy{
		Name:   "admin",
		Roles:  []domain.Role{domain.RoleAdmin},
		Reason: ErrAdminRequired.Reason,
	}
)

// Ownership 是所有权规则：调用方是资源所有者，或 (AdminOverride 时) 是管理员。
type Ownership struct {
	OwnerID       uint
	AdminOverride bool
	Reason        string
}

// Check 判断调用方是否拥有资源
func (o Ownership) Check(principal *domain.Principal) error {
	if principal == nil {
		return ErrAuthenticationRequired
	}
	if principal.Is(o.OwnerID) {
		return nil
	}
	if o.AdminOverride && principal.HasRole(domain.RoleAdmin) {
		return nil
	}
	if o.Reason == "" {
		return ErrAuthorization
	}
	return &Error{Kind: KindAuthorization, Reason: o.Reason}
}

// JobOwnership 职位由其雇主或管理员管理；申请的管理权也随职位归属。
func JobOwnership(job *domain.Job, reason string) Ownership {
	return Ownership{OwnerID: job.EmployerID, AdminOverride: true, Reason: reason}
}

// NotSelf 禁止对自己的账户执行操作，与角色无关
func NotSelf(principal *domain.Principal, targetID uint) error {
	if principal.Is(targetID) {
		return ErrCannotDeleteSelf
	}
	return nil
}
