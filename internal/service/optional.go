package service

import "unicode/utf8"

// Optional 是部分更新中可以被清空的字段。
// Set 为 false 表示保持原值；Set 为 true 且 Value 为 nil 表示清空。
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some 把字段设置为 v
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

// Null 清空字段
func Null[T any]() Optional[T] { return Optional[T]{Set: true} }

func (o Optional[T]) applyTo(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}

// checkLength 限制可选文本字段的长度 (按字符计)，与列宽一致
func checkLength(name string, v *string, max int) error {
	if v != nil && utf8.RuneCountInString(*v) > max {
		return validationError("%s must be at most %d characters", name, max)
	}
	return nil
}
