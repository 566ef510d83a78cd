package service

import (
	"errors"
	"fmt"

	"job-board/internal/repository"
)

// Kind 区分错误类别，HTTP 层据此选择状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindSelfAction
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindSelfAction:
		return "self_action"
	}
	return "internal"
}

// Error 是服务层返回给调用方的业务错误，Reason 可直接展示给用户。
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String() + " error"
	}
	return e.Reason
}

// Is 让 errors.Is 支持两种匹配：Reason 为空的目标按类别匹配，否则类别和原因都要相同。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

// KindOf 返回错误的类别，非 *Error 一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

// 按类别匹配的哨兵
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrAuthorization  = &Error{Kind: KindAuthorization}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrSelfAction     = &Error{Kind: KindSelfAction}
)

// 具体业务错误
var (
	ErrAuthenticationRequired = &Error{Kind: KindAuthentication, Reason: "authentication required"}
	ErrInvalidCredentials     = &Error{Kind: KindAuthentication, Reason: "invalid username or password"}
	ErrAdminRequired          = &Error{Kind: KindAuthorization, Reason: "admin privileges required"}

	// token 无法解析、已过期或会话已被吊销
	ErrInvalidSession = &Error{Kind: KindAuthentication, Reason: "invalid or expired session"}

	ErrUsernameTaken = &Error{Kind: KindConflict, Reason: "username already exists"}
	ErrEmailTaken    = &Error{Kind: KindConflict, Reason: "email already exists"}

	// 唯一约束在写入时才被发现，无法区分是哪一列
	ErrUsernameOrEmailTaken = &Error{Kind: KindConflict, Reason: "username or email already exists"}

	ErrAlreadyApplied  = &Error{Kind: KindConflict, Reason: "already applied to this job"}
	ErrDuplicateEntry  = &Error{Kind: KindConflict, Reason: "duplicate entry"}
	ErrPasswordTooLong = &Error{Kind: KindValidation, Reason: "password must be at most 72 bytes"}
	ErrInvalidUserType = &Error{Kind: KindValidation, Reason: "invalid user type"}
	ErrInvalidStatus   = &Error{Kind: KindValidation, Reason: "invalid status"}
	ErrJobNotActive    = &Error{Kind: KindValidation, Reason: "job not active"}

	ErrUserNotFound        = &Error{Kind: KindNotFound, Reason: "user not found"}
	ErrJobNotFound         = &Error{Kind: KindNotFound, Reason: "job not found"}
	ErrApplicationNotFound = &Error{Kind: KindNotFound, Reason: "application not found"}

	ErrCannotDeleteSelf = &Error{Kind: KindSelfAction, Reason: "cannot delete your own account"}

	ErrInternalServer = &Error{Kind: KindInternal, Reason: "internal server error"}
)

// mapRepoError 把仓库层错误映射为服务层错误。notFound 为记录不存在时使用的业务错误。
func mapRepoError(err error, notFound *Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repository.ErrDuplicateEntry):
		return ErrDuplicateEntry
	}
	return ErrInternalServer
}
